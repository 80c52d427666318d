package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LanguagePair selects which romanization-to-native-script instruction applies.
type LanguagePair string

const (
	PairBenglishBangla LanguagePair = "benglish-bangla"
	PairHinglishHindi  LanguagePair = "hinglish-hindi"

	// DefaultPair is used when a request names an unknown pair. Unknown
	// values convert as Benglish instead of failing.
	DefaultPair = PairBenglishBangla
)

var pairInstructions = map[LanguagePair]string{
	PairBenglishBangla: `You are a Benglish to Bangla script converter. Convert Bengali words written in English/Latin letters into proper Bangla script. DO NOT translate English words - keep them as-is. Only convert Bengali words that are written using English letters into Bangla script. Preserve all punctuation, tone, structure, and formatting exactly as given. Handle informal, poetic, or conversational text naturally.`,
	PairHinglishHindi:  `You are a Hinglish to Hindi script converter. Convert Hindi words written in English/Latin letters into proper Devanagari/Hindi script. DO NOT translate English words - keep them as-is. Only convert Hindi words that are written using English letters into Hindi script. Preserve all punctuation, tone, structure, and formatting exactly as given. Handle informal, poetic, or conversational text naturally.`,
}

var pairScripts = map[LanguagePair]string{
	PairBenglishBangla: "বাংলা",
	PairHinglishHindi:  "हिंदी",
}

// ParsePair normalizes a raw pair value, falling back to DefaultPair for
// anything it does not recognize.
func ParsePair(raw string) LanguagePair {
	pair := LanguagePair(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := pairInstructions[pair]; ok {
		return pair
	}
	return DefaultPair
}

// Instruction returns the system instruction for the pair.
func (p LanguagePair) Instruction() string {
	if instr, ok := pairInstructions[p]; ok {
		return instr
	}
	return pairInstructions[DefaultPair]
}

// Source returns the romanization scheme name, e.g. "Benglish".
func (p LanguagePair) Source() string {
	name, _, _ := strings.Cut(string(p), "-")
	return cases.Title(language.Und).String(name)
}

// Target returns the native-script label, e.g. "বাংলা".
func (p LanguagePair) Target() string {
	if script, ok := pairScripts[p]; ok {
		return script
	}
	return pairScripts[DefaultPair]
}

// PairInfo describes a supported pair for clients.
type PairInfo struct {
	Value  string `json:"value"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Pairs lists the supported language pairs in a stable order.
func Pairs() []PairInfo {
	ordered := []LanguagePair{PairBenglishBangla, PairHinglishHindi}
	infos := make([]PairInfo, 0, len(ordered))
	for _, p := range ordered {
		infos = append(infos, PairInfo{
			Value:  string(p),
			Source: p.Source(),
			Target: p.Target(),
			Label:  p.Source() + " → " + p.Target(),
		})
	}
	return infos
}

// ConversionRequest is a single transliteration request. Not persisted.
type ConversionRequest struct {
	Text string
	Pair LanguagePair
}

// ConversionResult carries the native-script rendering. ConvertedText may be
// empty when the model returns no candidates.
type ConversionResult struct {
	ConvertedText string
}
