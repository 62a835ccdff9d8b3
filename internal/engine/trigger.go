package engine

import (
	"strings"

	"github.com/az-ai-labs/timexpr/tokenizer"
)

// TriggerInfo is the coarse signal the trigger scanner extracts from
// raw input before rule activation (spec section 4.2).
type TriggerInfo struct {
	Buckets BucketMask
	Phrases map[string]bool
}

var weekdayWords = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"mondays", "tuesdays", "wednesdays", "thursdays", "fridays", "saturdays", "sundays",
	"mon", "tue", "wed", "thu", "fri", "sat", "sun",
}

var monthWords = [...]string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

var ordinalWords = [...]string{
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth",
	"1st", "2nd", "3rd", "4th", "5th",
}

// keyPhrases is the fixed closed list of phrases the scanner detects.
// Single words are matched against whole whitespace tokens; phrases
// containing a space are matched as a lowercased substring anywhere in
// the input.
var keyPhrases = [...]string{
	"tomorrow", "yesterday", "today", "next", "last", "this", "now",
	"from", "by", "to", "until", "through", "thru", "between", "after",
	"before", "since", "eod", "eom", "bom", "month", "before last", "after next",
	"at", "on", "in", "for", "of", "ago", "hence", "back", "following",
	"thanksgiving", "christmas", "xmas", "boss", "black", "friday",
	"mlk", "martin", "new", "year", "eve", "summer", "fall", "autumn",
	"winter", "spring", "asap", "soon", "immediately", "moment", "atm",
	"ides", "tmrw", "week", "weekend", "wkend", "quarter", "qtr", "qr",
	"half", "past", "till", "day", "hour", "minute", "second", "noon",
	"midnight", "midnite", "mid", "end", "morning", "afternoon", "evening",
	"night", "tonight", "late", "early", "beginning",
}

// Scan inspects input for coarse buckets and key phrases. It is a
// heuristic scan: false positives are acceptable because the full
// regex/predicate rule still has to match.
func Scan(input string) TriggerInfo {
	lower := strings.ToLower(input)
	buckets := BucketMask(0)

	if strings.ContainsAny(input, "0123456789") {
		buckets |= HasDigits
	}
	if strings.Contains(input, ":") {
		buckets |= HasColon
	}
	if strings.Contains(lower, "am") || strings.Contains(lower, "a.m") ||
		strings.Contains(lower, "pm") || strings.Contains(lower, "p.m") {
		buckets |= HasAMPM
	}

	words := splitWords(lower)

	if anyWordIn(words, weekdayWords[:], stripNonAlpha) {
		buckets |= Weekdayish
	}
	if anyWordIn(words, monthWords[:], stripNonAlpha) {
		buckets |= Monthish
	}
	if anyWordIn(words, ordinalWords[:], stripNonAlphaNum) {
		buckets |= Ordinalish
	}

	phrases := make(map[string]bool)
	for _, phrase := range keyPhrases {
		if strings.Contains(phrase, " ") {
			if strings.Contains(lower, phrase) {
				phrases[phrase] = true
			}
			continue
		}
		for _, w := range words {
			if stripNonAlpha(w) == phrase {
				phrases[phrase] = true
				break
			}
		}
	}

	return TriggerInfo{Buckets: buckets, Phrases: phrases}
}

// splitWords reuses the tokenizer package's rune-level scanner instead
// of a bare strings.Fields split, then re-glues adjacent Word/Number
// tokens ("3" + "pm", "1" + "st") that strings.Fields would have kept
// joined anyway, since the scanner treats a letter-digit boundary as a
// new token where a whitespace-only split would not.
func splitWords(s string) []string {
	tokens := tokenizer.WordTokens(s)
	words := make([]string, 0, len(tokens))
	var builder strings.Builder
	flush := func() {
		if builder.Len() > 0 {
			words = append(words, builder.String())
			builder.Reset()
		}
	}
	prevEnd := -1
	for _, tok := range tokens {
		switch tok.Type {
		case tokenizer.Word, tokenizer.Number:
			if prevEnd != tok.Start {
				flush()
			}
			builder.WriteString(tok.Text)
			prevEnd = tok.End
		default:
			flush()
			prevEnd = -1
		}
	}
	flush()
	return words
}

func anyWordIn(words []string, set []string, strip func(string) string) bool {
	for _, w := range words {
		s := strip(w)
		for _, candidate := range set {
			if s == candidate {
				return true
			}
		}
	}
	return false
}

func stripNonAlpha(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	})
}

func stripNonAlphaNum(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
}
