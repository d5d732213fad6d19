package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/tfidf"
)

var faqsVocab bool

var faqsCmd = &cobra.Command{
	Use:   "faqs",
	Short: "List loaded FAQ records and collections",
	Args:  cobra.NoArgs,
	RunE:  runFAQs,
}

func init() {
	faqsCmd.Flags().BoolVar(&faqsVocab, "vocab", false, "print the fitted vocabulary with IDF weights")
	rootCmd.AddCommand(faqsCmd)
}

func runFAQs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx, bootstrapOptions{defaultLevel: "warn"})
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if faqsVocab {
		return printVocabulary(out, a.model)
	}
	return printCorpus(out, a.corpus, a.model)
}

func printCorpus(out io.Writer, c *corpus.Corpus, m *tfidf.Model) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLLECTION\tPRICE\tQUESTION")
	for _, r := range c.Records() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID(), r.Collection(), r.PriceRange(), r.Question())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	fmt.Fprintf(out, "\n%d records, %d collections, %d terms (min_df=%d)\n",
		c.Len(), len(c.Collections()), m.VocabularySize(), m.MinDF())
	for _, name := range c.Collections() {
		fmt.Fprintf(out, "  %s: %d\n", name, len(c.InCollection(name)))
	}
	return nil
}

func printVocabulary(out io.Writer, m *tfidf.Model) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TERM\tIDF")
	for _, term := range m.Vocabulary() {
		idf, _ := m.IDF(term)
		fmt.Fprintf(tw, "%s\t%.4f\n", term, idf)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}
