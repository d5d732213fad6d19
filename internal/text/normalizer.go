// Package text turns raw text into normalized token sequences for TF-IDF matching.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball/english"
)

// DefaultFallback is substituted when normalization yields no tokens,
// so the vectorizer never sees a zero-length document. The normalizer
// stores these in normalized form ("boutique" becomes "boutiqu").
var DefaultFallback = []string{"boutique", "shirt"}

// minAlphaLen is the minimum rune length of a kept alphabetic token.
const minAlphaLen = 3

// maxStemPasses bounds the fixed-point iteration of the stemmer.
const maxStemPasses = 4

var numericRegex = regexp.MustCompile(`^[+-]?\d+(?:[.,:/]\d+)*$`)

// Normalizer produces the ordered token sequence for a text.
type Normalizer interface {
	Tokenize(text string) []string
}

// English is the English-language Normalizer.
type English struct {
	fallback  []string
	stopwords map[string]struct{}
}

// Option configures an English normalizer.
type Option func(*English)

// WithFallback overrides the tokens returned for texts with no surviving token.
func WithFallback(tokens []string) Option {
	return func(e *English) {
		if len(tokens) > 0 {
			e.fallback = append([]string(nil), tokens...)
		}
	}
}

// WithExtraStopwords adds stopwords on top of the built-in list.
func WithExtraStopwords(extra ...string) Option {
	return func(e *English) {
		for _, w := range extra {
			e.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewEnglish creates an English normalizer.
func NewEnglish(opts ...Option) *English {
	e := &English{
		fallback:  append([]string(nil), DefaultFallback...),
		stopwords: make(map[string]struct{}, len(stopwords)),
	}
	for w := range stopwords {
		e.stopwords[w] = struct{}{}
	}
	for _, o := range opts {
		o(e)
	}
	e.fallback = e.normalizeFallback(e.fallback)
	return e
}

// normalizeFallback puts fallback tokens through the same per-token path as
// Tokenize so they land on vocabulary columns. Tokens that would be dropped
// are removed; if none survive, the lowercased originals are kept.
func (e *English) normalizeFallback(raw []string) []string {
	var out []string
	for _, tok := range raw {
		if norm, ok := e.token(strings.ToLower(strings.TrimSpace(tok))); ok {
			out = append(out, norm)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, tok := range raw {
		out = append(out, strings.ToLower(tok))
	}
	return out
}

// Tokenize segments text on Unicode word boundaries and keeps, in order:
// numeric and currency tokens as lowercased surface forms, and alphabetic
// non-stopword tokens of 3+ runes as their lowercased base form.
func (e *English) Tokenize(text string) []string {
	var out []string
	segs := words.FromString(text)
	for segs.Next() {
		if tok, ok := e.token(stripClitic(strings.ToLower(segs.Value()))); ok {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), e.fallback...)
	}
	return out
}

// token normalizes one lowercased segment. The length and stopword filters
// apply to the base form too, so a token never normalizes to something a
// second pass would drop ("ids" -> "id", "seeing" -> "see").
func (e *English) token(tok string) (string, bool) {
	if tok == "" || e.isStopword(tok) {
		return "", false
	}
	switch {
	case isNumeric(tok) || isCurrency(tok):
		return tok, true
	case isAlpha(tok) && utf8.RuneCountInString(tok) >= minAlphaLen:
		base := baseForm(tok)
		if utf8.RuneCountInString(base) < minAlphaLen || e.isStopword(base) {
			return "", false
		}
		return base, true
	}
	return "", false
}

// Fallback returns a copy of the fallback tokens.
func (e *English) Fallback() []string {
	return append([]string(nil), e.fallback...)
}

func (e *English) isStopword(tok string) bool {
	_, ok := e.stopwords[tok]
	return ok
}

// baseForm reduces a word with the Snowball English stemmer, iterated to a
// fixed point so that normalizing an already-normalized token is a no-op.
func baseForm(tok string) string {
	cur := tok
	for range maxStemPasses {
		next := english.Stem(cur, true)
		if next == cur || next == "" {
			break
		}
		cur = next
	}
	return cur
}

// stripClitic drops English contractions: "what's" -> "what", "don't" -> "do".
func stripClitic(tok string) string {
	tok = strings.ReplaceAll(tok, "’", "'")
	if strings.HasSuffix(tok, "n't") {
		return tok[:len(tok)-3]
	}
	if i := strings.IndexByte(tok, '\''); i >= 0 {
		return tok[:i]
	}
	return tok
}

func isNumeric(tok string) bool {
	return numericRegex.MatchString(tok)
}

func isCurrency(tok string) bool {
	for _, r := range tok {
		if !unicode.Is(unicode.Sc, r) {
			return false
		}
	}
	return true
}

func isAlpha(tok string) bool {
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
