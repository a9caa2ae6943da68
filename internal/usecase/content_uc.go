package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
)

// TafsirMaxLen is where the commentary block gets cut off.
const TafsirMaxLen = 300

// translationEditions maps language codes to quran.com translation ids.
var translationEditions = map[string]int{
	"en": 131, // Sahih International
	"ar": 158,
	"es": 83,
	"fr": 136,
	"de": 27,
	"tr": 77,
	"ur": 97,
	"fa": 135,
	"ru": 79,
	"id": 134,
	"bn": 161,
	"hi": 162,
}

const defaultTranslationEdition = 131

// tafsirEditions maps tafsir source codes to quran.com tafsir ids.
var tafsirEditions = map[string]int{
	"en.sahih":      169,
	"en.pickthall":  168,
	"en.yusufali":   167,
	"ar.muyassar":   171,
	"ar.qurtubi":    172,
	"ar.tabari":     173,
	"en.maududi":    170,
	"ur.jalandhry":  174,
	"tr.diyanet":    175,
	"id.indonesian": 176,
}

const defaultTafsirEdition = 169

// Compile-time check
var _ ContentUseCase = (*contentUC)(nil)

// ContentUseCase assembles verse content for a chat. Every fetch degrades to
// nil or a fallback instead of failing, so a provider outage costs message
// richness, not the delivery.
type ContentUseCase interface {
	// RandomVerse picks uniformly over the corpus; if the pick cannot be
	// fetched it falls back to the first verse, and only when that also
	// fails does it return domain.ErrContentUnavailable.
	RandomVerse(ctx context.Context) (*model.Verse, error)
	VerseByKey(ctx context.Context, verseKey string) (*model.Verse, error)
	// TranslationFor returns nil on provider failure; unknown language codes
	// use the default edition.
	TranslationFor(ctx context.Context, verseKey, language string) *model.Translation
	// TafsirFor returns nil on provider failure; unknown source codes use
	// the default edition.
	TafsirFor(ctx context.Context, verseKey, source string) *model.Tafsir
	// BuildMessage assembles the full formatted message for a chat's
	// preferences and reports which verse it contains.
	BuildMessage(ctx context.Context, pref *model.ChatPreference) (text string, verseKey string, err error)
}

type contentUC struct {
	provider adapter.ContentProvider
	log      *zerolog.Logger
}

func NewContentUseCase(provider adapter.ContentProvider, logger *zerolog.Logger) *contentUC {
	return &contentUC{provider: provider, log: logger}
}

func (c *contentUC) RandomVerse(ctx context.Context) (*model.Verse, error) {
	key := strconv.Itoa(rand.Intn(model.TotalVerses) + 1)
	v, err := c.provider.VerseByKey(ctx, key)
	if err == nil {
		return v, nil
	}
	c.log.Warn().Err(err).Str("verse_key", key).Msg("random verse fetch failed, using fallback")

	v, err = c.provider.VerseByKey(ctx, model.FallbackVerseKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrContentUnavailable, err)
	}
	return v, nil
}

func (c *contentUC) VerseByKey(ctx context.Context, verseKey string) (*model.Verse, error) {
	return c.provider.VerseByKey(ctx, verseKey)
}

func (c *contentUC) TranslationFor(ctx context.Context, verseKey, language string) *model.Translation {
	editionID, ok := translationEditions[language]
	if !ok {
		editionID = defaultTranslationEdition
	}
	t, err := c.provider.Translation(ctx, editionID, verseKey)
	if err != nil {
		c.log.Warn().Err(err).Str("verse_key", verseKey).Str("language", language).Msg("translation fetch failed")
		return nil
	}
	return t
}

func (c *contentUC) TafsirFor(ctx context.Context, verseKey, source string) *model.Tafsir {
	editionID, ok := tafsirEditions[source]
	if !ok {
		editionID = defaultTafsirEdition
	}
	tf, err := c.provider.Tafsir(ctx, editionID, verseKey)
	if err != nil {
		c.log.Warn().Err(err).Str("verse_key", verseKey).Str("source", source).Msg("tafsir fetch failed")
		return nil
	}
	return tf
}

func (c *contentUC) BuildMessage(ctx context.Context, pref *model.ChatPreference) (string, string, error) {
	v, err := c.RandomVerse(ctx)
	if err != nil {
		return "", "", err
	}
	tr := c.TranslationFor(ctx, v.VerseKey, pref.Language)
	tf := c.TafsirFor(ctx, v.VerseKey, pref.TafsirSource)
	return FormatMessage(v, tr, tf, true), v.VerseKey, nil
}

// FormatMessage renders the verse message. Pure: nil translation or tafsir
// just drops that block, a nil-heavy call still yields a valid message.
func FormatMessage(v *model.Verse, tr *model.Translation, tf *model.Tafsir, includeTafsir bool) string {
	var sb strings.Builder
	sb.WriteString("🕌 *Daily Ayah*\n\n")

	sb.WriteString(fmt.Sprintf("📖 *%s (%s) %d:*\n", v.ChapterNameArabic, v.ChapterNameSimple, v.VerseNumber))
	sb.WriteString(v.TextUthmani)
	sb.WriteString("\n\n")

	if tr != nil {
		sb.WriteString("📚 *Translation:*\n")
		sb.WriteString(tr.Text)
		sb.WriteString("\n\n")
	}

	if includeTafsir && tf != nil {
		sb.WriteString("📝 *Tafsir:*\n")
		text := tf.Text
		// Cut on rune boundaries; Arabic tafsir text is multi-byte and a
		// byte slice could split a rune, producing invalid UTF-8.
		if runes := []rune(text); len(runes) > TafsirMaxLen {
			text = string(runes[:TafsirMaxLen]) + "..."
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("📍 *Reference:* %s\n", v.VerseKey))
	sb.WriteString(fmt.Sprintf("🔗 [Read more](https://quran.com/%s)", v.VerseKey))
	return sb.String()
}
