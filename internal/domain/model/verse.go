package model

// TotalVerses is the number of canonical verse addresses in the corpus.
const TotalVerses = 6236

// FallbackVerseKey is fetched when the random pick fails upstream.
const FallbackVerseKey = "1:1"

// Verse is a single ayah as returned by the content provider,
// addressed by its canonical "chapter:verse" key.
type Verse struct {
	VerseKey          string
	VerseNumber       int
	TextUthmani       string
	ChapterNameArabic string
	ChapterNameSimple string
}

// Translation is a rendering of a verse in one translation edition.
type Translation struct {
	Text string
}

// Tafsir is a commentary excerpt for a verse from one tafsir edition.
type Tafsir struct {
	Text string
}
