package model

// ChatKind distinguishes the two preference namespaces. Private chats and
// group chats are stored separately even when Telegram ids collide.
type ChatKind string

const (
	KindPrivate ChatKind = "private"
	KindGroup   ChatKind = "group"
)

// Defaults applied when a chat has no stored record yet.
const (
	DefaultLanguage     = "en"
	DefaultTafsirSource = "en.sahih"
	DefaultTimezone     = "UTC"
)

// ChatPreference holds the per-chat delivery configuration. One record per
// (kind, chat id); every write is a full upsert.
type ChatPreference struct {
	ChatID       int64
	DisplayName  string
	Language     string
	TafsirSource string
	DailyEnabled bool
	Timezone     string
}

// NewChatPreference returns a preference record with all defaults set.
func NewChatPreference(chatID int64, displayName string) *ChatPreference {
	return &ChatPreference{
		ChatID:       chatID,
		DisplayName:  displayName,
		Language:     DefaultLanguage,
		TafsirSource: DefaultTafsirSource,
		DailyEnabled: true,
		Timezone:     DefaultTimezone,
	}
}

// Languages maps supported translation language codes to display names.
var Languages = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"tr": "Turkish",
	"ur": "Urdu",
	"fa": "Persian",
	"ru": "Russian",
	"id": "Indonesian",
	"bn": "Bengali",
	"hi": "Hindi",
}

// LanguageCodes is the stable presentation order for pickers.
var LanguageCodes = []string{"en", "ar", "es", "fr", "de", "tr", "ur", "fa", "ru", "id", "bn", "hi"}

// TafsirSources maps supported tafsir source codes to display names.
var TafsirSources = map[string]string{
	"en.sahih":      "Sahih International",
	"en.pickthall":  "Pickthall",
	"en.yusufali":   "Yusuf Ali",
	"ar.muyassar":   "Tafsir Al-Muyassar",
	"ar.qurtubi":    "Tafsir Al-Qurtubi",
	"ar.tabari":     "Tafsir Al-Tabari",
	"en.maududi":    "Tafhim al-Qur'an - Maududi",
	"ur.jalandhry":  "Fateh Muhammad Jalandhry",
	"tr.diyanet":    "Diyanet Isleri",
	"id.indonesian": "Indonesian Ministry of Religion",
}

// TafsirSourceCodes is the stable presentation order for pickers.
var TafsirSourceCodes = []string{
	"en.sahih", "en.pickthall", "en.yusufali",
	"ar.muyassar", "ar.qurtubi", "ar.tabari",
	"en.maududi", "ur.jalandhry", "tr.diyanet", "id.indonesian",
}

func IsSupportedLanguage(code string) bool {
	_, ok := Languages[code]
	return ok
}

func IsSupportedTafsirSource(code string) bool {
	_, ok := TafsirSources[code]
	return ok
}

// LanguageName returns the display name for a language code, falling back to
// the default language's name for unknown codes.
func LanguageName(code string) string {
	if name, ok := Languages[code]; ok {
		return name
	}
	return Languages[DefaultLanguage]
}

// TafsirSourceName returns the display name for a tafsir code, falling back
// to the baseline source's name for unknown codes.
func TafsirSourceName(code string) string {
	if name, ok := TafsirSources[code]; ok {
		return name
	}
	return TafsirSources[DefaultTafsirSource]
}
