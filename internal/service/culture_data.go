package service

import "cultura-llm/internal/domain"

// Tabla estatica de perfiles culturales por idioma. Se carga una vez y
// nunca se muta; GetProfile resuelve cualquier codigo contra esta tabla
// con fallback a "en".
var culturalProfiles = map[string]domain.CulturalProfile{
	"en": {
		Language:          "en",
		Region:            "Global English",
		Formality:         domain.LevelModerate,
		Directness:        domain.LevelHigh,
		Hierarchy:         domain.LevelLow,
		Context:           domain.LevelLow,
		PersonalSpace:     domain.LevelHigh,
		TimeOrientation:   "monochronic",
		Greetings:         []string{"Hello", "Hi", "Good morning", "Good afternoon", "Good evening"},
		Farewells:         []string{"Goodbye", "Bye", "See you later", "Have a great day"},
		PolitenessMarkers: []string{"please", "thank you", "you're welcome", "excuse me"},
		TabooTopics:       []string{"personal finances", "age", "weight"},
		CulturalValues:    []string{"individualism", "efficiency", "directness"},
		BusinessHours:     "9:00-17:00",
		Holidays:          []string{"New Year", "Christmas", "Thanksgiving"},
	},
	"es": {
		Language:          "es",
		Region:            "Spanish-speaking countries",
		Formality:         domain.LevelHigh,
		Directness:        domain.LevelModerate,
		Hierarchy:         domain.LevelModerate,
		Context:           domain.LevelHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "polychronic",
		Greetings:         []string{"Hola", "Buenos días", "Buenas tardes", "Buenas noches"},
		Farewells:         []string{"Adiós", "Hasta luego", "Nos vemos", "Que tengas buen día"},
		PolitenessMarkers: []string{"por favor", "gracias", "de nada", "perdón", "disculpe"},
		TabooTopics:       []string{"personal income", "politics", "religion"},
		CulturalValues:    []string{"family", "respect", "personalismo"},
		BusinessHours:     "9:00-18:00",
		Holidays:          []string{"Día de los Reyes", "Semana Santa", "Día de los Muertos"},
	},
	"fr": {
		Language:          "fr",
		Region:            "French-speaking countries",
		Formality:         domain.LevelVeryHigh,
		Directness:        domain.LevelModerate,
		Hierarchy:         domain.LevelModerate,
		Context:           domain.LevelHigh,
		PersonalSpace:     domain.LevelModerate,
		TimeOrientation:   "monochronic",
		Greetings:         []string{"Bonjour", "Bonsoir", "Salut"},
		Farewells:         []string{"Au revoir", "À bientôt", "Bonne journée", "Bonne soirée"},
		PolitenessMarkers: []string{"s'il vous plaît", "merci", "de rien", "excusez-moi", "pardon"},
		TabooTopics:       []string{"money", "personal life", "work after hours"},
		CulturalValues:    []string{"intellectualism", "sophistication", "formality"},
		BusinessHours:     "9:00-17:00",
		Holidays:          []string{"Jour de l'An", "Pâques", "Fête du Travail", "Noël"},
	},
	"de": {
		Language:          "de",
		Region:            "German-speaking countries",
		Formality:         domain.LevelHigh,
		Directness:        domain.LevelVeryHigh,
		Hierarchy:         domain.LevelModerate,
		Context:           domain.LevelLow,
		PersonalSpace:     domain.LevelHigh,
		TimeOrientation:   "monochronic",
		Greetings:         []string{"Guten Morgen", "Guten Tag", "Guten Abend", "Hallo"},
		Farewells:         []string{"Auf Wiedersehen", "Tschüss", "Schönen Tag noch"},
		PolitenessMarkers: []string{"bitte", "danke", "entschuldigung", "verzeihung"},
		TabooTopics:       []string{"personal finances", "Nazi era", "personal questions"},
		CulturalValues:    []string{"punctuality", "efficiency", "order", "directness"},
		BusinessHours:     "8:00-17:00",
		Holidays:          []string{"Neujahr", "Ostern", "Tag der Arbeit", "Weihnachten"},
	},
	"zh": {
		Language:          "zh",
		Region:            "Chinese-speaking regions",
		Formality:         domain.LevelVeryHigh,
		Directness:        domain.LevelLow,
		Hierarchy:         domain.LevelHigh,
		Context:           domain.LevelVeryHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "long_term",
		Greetings:         []string{"你好", "您好", "早上好", "下午好", "晚上好"},
		Farewells:         []string{"再见", "拜拜", "回头见", "慢走"},
		PolitenessMarkers: []string{"请", "谢谢", "不客气", "对不起", "抱歉"},
		TabooTopics:       []string{"politics", "Taiwan", "Tibet", "personal failure"},
		CulturalValues:    []string{"harmony", "face", "hierarchy", "long-term thinking"},
		BusinessHours:     "9:00-18:00",
		Holidays:          []string{"春节", "清明节", "劳动节", "中秋节", "国庆节"},
	},
	"ja": {
		Language:          "ja",
		Region:            "Japan",
		Formality:         domain.LevelVeryHigh,
		Directness:        domain.LevelVeryLow,
		Hierarchy:         domain.LevelVeryHigh,
		Context:           domain.LevelVeryHigh,
		PersonalSpace:     domain.LevelModerate,
		TimeOrientation:   "long_term",
		Greetings:         []string{"おはようございます", "こんにちは", "こんばんは"},
		Farewells:         []string{"さようなら", "また明日", "お疲れ様でした"},
		PolitenessMarkers: []string{"お願いします", "ありがとうございます", "すみません", "失礼します"},
		TabooTopics:       []string{"WWII", "personal failures", "direct criticism"},
		CulturalValues:    []string{"wa (harmony)", "respect", "group consensus", "face-saving"},
		BusinessHours:     "9:00-18:00",
		Holidays:          []string{"お正月", "ゴールデンウィーク", "お盆", "敬老の日"},
	},
	"ar": {
		Language:          "ar",
		Region:            "Arabic-speaking countries",
		Formality:         domain.LevelHigh,
		Directness:        domain.LevelModerate,
		Hierarchy:         domain.LevelHigh,
		Context:           domain.LevelVeryHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "polychronic",
		Greetings:         []string{"السلام عليكم", "أهلا وسهلا", "مرحبا", "صباح الخير"},
		Farewells:         []string{"مع السلامة", "إلى اللقاء", "الله معك"},
		PolitenessMarkers: []string{"من فضلك", "شكرا", "عفوا", "آسف"},
		TabooTopics:       []string{"alcohol", "pork", "personal relationships", "politics"},
		CulturalValues:    []string{"hospitality", "honor", "family", "religious respect"},
		BusinessHours:     "8:00-16:00",
		Holidays:          []string{"عيد الفطر", "عيد الأضحى", "رمضان", "رأس السنة الهجرية"},
	},
	"hi": {
		Language:          "hi",
		Region:            "India (Hindi)",
		Formality:         domain.LevelHigh,
		Directness:        domain.LevelLow,
		Hierarchy:         domain.LevelHigh,
		Context:           domain.LevelHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "polychronic",
		Greetings:         []string{"नमस्ते", "नमस्कार", "आदाब", "सत श्री अकाल"},
		Farewells:         []string{"फिर मिलेंगे", "अलविदा", "जाइए"},
		PolitenessMarkers: []string{"कृपया", "धन्यवाद", "माफ करिए", "क्षमा करें"},
		TabooTopics:       []string{"beef", "caste system", "partition", "poverty"},
		CulturalValues:    []string{"respect for elders", "hospitality", "spirituality", "family"},
		BusinessHours:     "10:00-18:00",
		Holidays:          []string{"दिवाली", "होली", "दशहरा", "ईद", "गुरु नानक जयंती"},
	},
	"pt": {
		Language:          "pt",
		Region:            "Portuguese-speaking countries",
		Formality:         domain.LevelModerate,
		Directness:        domain.LevelModerate,
		Hierarchy:         domain.LevelModerate,
		Context:           domain.LevelHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "polychronic",
		Greetings:         []string{"Olá", "Bom dia", "Boa tarde", "Boa noite"},
		Farewells:         []string{"Tchau", "Até logo", "Até mais", "Tenha um bom dia"},
		PolitenessMarkers: []string{"por favor", "obrigado/obrigada", "de nada", "desculpe"},
		TabooTopics:       []string{"personal income", "politics", "colonial history"},
		CulturalValues:    []string{"warmth", "personal relationships", "flexibility"},
		BusinessHours:     "9:00-18:00",
		Holidays:          []string{"Ano Novo", "Carnaval", "Páscoa", "Natal"},
	},
	"ru": {
		Language:          "ru",
		Region:            "Russian-speaking countries",
		Formality:         domain.LevelHigh,
		Directness:        domain.LevelHigh,
		Hierarchy:         domain.LevelHigh,
		Context:           domain.LevelHigh,
		PersonalSpace:     domain.LevelLow,
		TimeOrientation:   "long_term",
		Greetings:         []string{"Здравствуйте", "Привет", "Доброе утро", "Добрый день"},
		Farewells:         []string{"До свидания", "Пока", "Удачи", "Хорошего дня"},
		PolitenessMarkers: []string{"пожалуйста", "спасибо", "извините", "простите"},
		TabooTopics:       []string{"Soviet era", "personal finances", "politics"},
		CulturalValues:    []string{"strength", "endurance", "intellectual discourse", "tradition"},
		BusinessHours:     "9:00-18:00",
		Holidays:          []string{"Новый год", "Рождество", "День Победы", "Масленица"},
	},
}

// Saludos por registro formal/informal; el indice depende de la hora del dia.
var formalGreetings = map[string][]string{
	"en": {"Good morning", "Good afternoon", "Good evening", "How do you do?"},
	"es": {"Buenos días", "Buenas tardes", "Buenas noches", "¿Cómo está usted?"},
	"fr": {"Bonjour", "Bonsoir", "Comment allez-vous?"},
	"de": {"Guten Morgen", "Guten Tag", "Guten Abend", "Wie geht es Ihnen?"},
	"zh": {"您好", "早上好", "下午好", "晚上好"},
	"ja": {"おはようございます", "こんにちは", "こんばんは"},
	"ar": {"السلام عليكم", "صباح الخير", "مساء الخير"},
	"hi": {"नमस्ते", "नमस्कार", "आप कैसे हैं?"},
	"pt": {"Bom dia", "Boa tarde", "Boa noite", "Como está?"},
	"ru": {"Здравствуйте", "Доброе утро", "Добрый день", "Добрый вечер"},
}

var informalGreetings = map[string][]string{
	"en": {"Hi", "Hello", "Hey", "What's up?"},
	"es": {"Hola", "¿Qué tal?", "¿Cómo estás?"},
	"fr": {"Salut", "Coucou", "Ça va?"},
	"de": {"Hallo", "Hi", "Wie geht's?"},
	"zh": {"你好", "嗨", "你好吗?"},
	"ja": {"こんにちは", "やあ", "元気?"},
	"ar": {"مرحبا", "أهلا", "كيف الحال?"},
	"hi": {"हैलो", "क्या हाल है?"},
	"pt": {"Oi", "Olá", "Tudo bem?"},
	"ru": {"Привет", "Здарова", "Как дела?"},
}

var culturalTips = map[string]string{
	"zh": "In Chinese culture, saving face is important. Avoid direct criticism and allow graceful ways to agree.",
	"ja": "Japanese communication values harmony (wa). Be indirect and respectful of hierarchy.",
	"ar": "Arabic culture values hospitality and respect. Religious considerations are important.",
	"hi": "Indian culture emphasizes respect for elders and family values. Hierarchy matters.",
	"de": "German culture values directness, punctuality, and efficiency. Be clear and precise.",
	"fr": "French culture appreciates formality and intellectual discourse. Use proper etiquette.",
	"es": "Spanish culture values personal relationships and warm communication. Be friendly and patient.",
	"pt": "Portuguese culture is warm and relationship-focused. Personal connections matter.",
	"ru": "Russian culture values intellectual depth and direct communication. Show respect for knowledge.",
}

const genericCulturalTip = "Be respectful of cultural differences and local customs."

// Terminos sensibles adicionales por contexto cultural; generan advertencias,
// nunca bloquean.
var sensitiveTerms = map[string][]string{
	"zh": {"taiwan", "tibet", "democracy", "freedom"},
	"ar": {"alcohol", "pork", "dating"},
	"hi": {"beef", "caste", "pakistan"},
}

var languageInfoTable = map[string]domain.LanguageInfo{
	"en": {Name: "English", Native: "English", Family: "Germanic", Script: "Latin"},
	"es": {Name: "Spanish", Native: "Español", Family: "Romance", Script: "Latin"},
	"fr": {Name: "French", Native: "Français", Family: "Romance", Script: "Latin"},
	"de": {Name: "German", Native: "Deutsch", Family: "Germanic", Script: "Latin"},
	"zh": {Name: "Chinese", Native: "中文", Family: "Sino-Tibetan", Script: "Han"},
	"ja": {Name: "Japanese", Native: "日本語", Family: "Japonic", Script: "Hiragana/Katakana/Kanji"},
	"ar": {Name: "Arabic", Native: "العربية", Family: "Semitic", Script: "Arabic"},
	"hi": {Name: "Hindi", Native: "हिन्दी", Family: "Indo-European", Script: "Devanagari"},
	"pt": {Name: "Portuguese", Native: "Português", Family: "Romance", Script: "Latin"},
	"ru": {Name: "Russian", Native: "Русский", Family: "Slavic", Script: "Cyrillic"},
	"it": {Name: "Italian", Native: "Italiano", Family: "Romance", Script: "Latin"},
	"ko": {Name: "Korean", Native: "한국어", Family: "Koreanic", Script: "Hangul"},
	"nl": {Name: "Dutch", Native: "Nederlands", Family: "Germanic", Script: "Latin"},
	"sv": {Name: "Swedish", Native: "Svenska", Family: "Germanic", Script: "Latin"},
	"pl": {Name: "Polish", Native: "Polski", Family: "Slavic", Script: "Latin"},
	"tr": {Name: "Turkish", Native: "Türkçe", Family: "Turkic", Script: "Latin"},
	"uk": {Name: "Ukrainian", Native: "Українська", Family: "Slavic", Script: "Cyrillic"},
	"he": {Name: "Hebrew", Native: "עברית", Family: "Semitic", Script: "Hebrew"},
	"th": {Name: "Thai", Native: "ไทย", Family: "Tai-Kadai", Script: "Thai"},
	"vi": {Name: "Vietnamese", Native: "Tiếng Việt", Family: "Austroasiatic", Script: "Latin"},
}

var defaultLanguageFeatures = domain.LanguageFeatures{
	Script:          "Latin",
	Direction:       "ltr",
	Family:          "Unknown",
	Complexity:      "medium",
	FormalityLevels: []string{"informal", "formal"},
	WordOrder:       "SVO",
}

var languageFeatureTable = map[string]domain.LanguageFeatures{
	"zh": {Script: "Han", Direction: "ltr", Family: "Sino-Tibetan", Complexity: "high", FormalityLevels: []string{"informal", "formal", "honorific"}, WordOrder: "SVO"},
	"ja": {Script: "Hiragana/Katakana/Kanji", Direction: "ltr", Family: "Japonic", Complexity: "very_high", FormalityLevels: []string{"casual", "polite", "respectful", "humble"}, WordOrder: "SOV"},
	"ar": {Script: "Arabic", Direction: "rtl", Family: "Semitic", Complexity: "high", FormalityLevels: []string{"informal", "formal", "classical"}, HasGender: true, HasCases: true, WordOrder: "VSO"},
	"hi": {Script: "Devanagari", Direction: "ltr", Family: "Indo-European", Complexity: "medium", FormalityLevels: []string{"informal", "formal", "respectful"}, HasGender: true, HasCases: true, WordOrder: "SOV"},
	"de": {Script: "Latin", Direction: "ltr", Family: "Germanic", Complexity: "high", FormalityLevels: []string{"informal", "formal"}, HasGender: true, HasCases: true, WordOrder: "V2"},
	"ru": {Script: "Cyrillic", Direction: "ltr", Family: "Slavic", Complexity: "high", FormalityLevels: []string{"informal", "formal"}, HasGender: true, HasCases: true, WordOrder: "SVO"},
	"fr": {Script: "Latin", Direction: "ltr", Family: "Romance", Complexity: "medium", FormalityLevels: []string{"informal", "formal"}, HasGender: true, WordOrder: "SVO"},
	"es": {Script: "Latin", Direction: "ltr", Family: "Romance", Complexity: "medium", FormalityLevels: []string{"informal", "formal"}, HasGender: true, WordOrder: "SVO"},
	"ko": {Script: "Hangul", Direction: "ltr", Family: "Koreanic", Complexity: "high", FormalityLevels: []string{"casual", "polite", "formal", "honorific"}, WordOrder: "SOV"},
}
