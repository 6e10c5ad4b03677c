package language

// Function words count as known for ratio validation but never toward the
// learner's reportable vocabulary size.

var functionWords = map[Language]map[string]struct{}{
	English: wordSet(
		"a", "an", "the",
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "mine", "yours", "this", "that",
		"these", "those", "who", "what", "which", "where", "when", "why", "how",
		"and", "or", "but", "so", "if", "because", "while", "than", "then",
		"in", "on", "at", "to", "of", "for", "with", "from", "by", "about", "as",
		"into", "over", "under", "up", "down", "out", "off",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "have", "has", "had", "will", "would", "can", "could",
		"should", "may", "might", "must", "shall",
		"not", "no", "yes", "there", "here", "very", "too", "also", "just",
	),
	Spanish: wordSet(
		"el", "la", "los", "las", "un", "una", "unos", "unas",
		"yo", "tú", "él", "ella", "usted", "nosotros", "vosotros", "ellos", "ellas",
		"me", "te", "se", "nos", "os", "le", "les", "lo",
		"mi", "tu", "su", "mis", "tus", "sus", "nuestro", "nuestra",
		"este", "esta", "estos", "estas", "ese", "esa", "eso", "aquel",
		"que", "qué", "quien", "quién", "cual", "cuál", "donde", "dónde", "cuando",
		"cuándo", "como", "cómo", "por", "para", "con", "sin", "de", "del", "al",
		"a", "en", "entre", "sobre", "desde", "hasta",
		"y", "e", "o", "u", "pero", "si", "sí", "no", "ni", "porque", "pues",
		"es", "son", "era", "fue", "ser", "estar", "está", "están", "hay",
		"muy", "más", "menos", "también", "ya", "aquí", "allí",
	),
	French: wordSet(
		"le", "la", "les", "un", "une", "des", "du", "de", "d",
		"je", "tu", "il", "elle", "on", "nous", "vous", "ils", "elles",
		"me", "te", "se", "lui", "leur", "y", "en",
		"mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "votre",
		"ce", "cet", "cette", "ces", "qui", "que", "quoi", "dont", "où",
		"quand", "comment", "pourquoi", "quel", "quelle",
		"et", "ou", "mais", "si", "car", "donc", "parce",
		"à", "au", "aux", "dans", "sur", "sous", "avec", "sans", "pour", "par",
		"est", "sont", "était", "être", "avoir", "a", "ont", "avait",
		"ne", "pas", "non", "oui", "très", "plus", "moins", "aussi", "ici", "là",
	),
	German: wordSet(
		"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem",
		"einer", "eines",
		"ich", "du", "er", "sie", "es", "wir", "ihr", "mich", "dich", "sich",
		"uns", "euch", "ihm", "ihn",
		"mein", "dein", "sein", "unser", "euer",
		"dieser", "diese", "dieses", "jener", "wer", "was", "welche", "wo", "wann",
		"warum", "wie",
		"und", "oder", "aber", "denn", "weil", "wenn", "dass", "ob", "als",
		"in", "an", "auf", "zu", "von", "mit", "bei", "nach", "aus", "über",
		"unter", "für", "durch", "um", "vor", "zwischen",
		"ist", "sind", "war", "waren", "bin", "bist", "sein", "haben", "hat",
		"hatte", "wird", "werden", "kann", "können", "muss", "soll", "will",
		"nicht", "kein", "keine", "ja", "nein", "sehr", "auch", "nur", "noch",
		"schon", "hier", "da", "dort",
	),
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
