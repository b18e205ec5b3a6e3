// Package locale renders Normtime durations in a natural language.
//
// Translations live in YAML catalogs embedded into the binary, one per
// language (en-US and de-DE). A Localizer is chosen by language
// negotiation, so "de-AT" or "de;q=0.9, en;q=0.5" resolve to the German
// catalog and unknown languages fall back to US English.
//
//	l, err := locale.Parse("de-DE")
//	l.FormatDuration(normtime.Seconds(10))                // 10 Sekunden
//	l.FormatUnits(d, normtime.Normday, normtime.Hour)     // 900 Normtage 1 Stunde
//	l.Roughly(age, false)                                 // Anfang 20
package locale
