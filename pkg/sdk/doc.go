// Package faqbot embeds the FAQ-matching chatbot in another Go program.
//
// A Client loads a fixed set of FAQ records once, fits a TF-IDF model over
// them and answers queries through the pricing, collection and generic
// handlers, in that order.
//
//	bot, _ := faqbot.New(ctx, faqbot.WithCorpusFile("faqs.json"))
//	defer bot.Close()
//	reply, _ := bot.Ask(ctx, "How much are premium shirts?")
//	fmt.Println(reply.Text)
//
// Replies can optionally be cached in Valkey or Redis, keyed by the corpus
// fingerprint:
//
//	bot, _ := faqbot.New(ctx,
//	    faqbot.WithCorpusFile("faqs.json"),
//	    faqbot.WithValkey("localhost:6379", ""),
//	)
package faqbot
