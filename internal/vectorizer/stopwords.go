package vectorizer

// stopWords are excluded from the vocabulary before n-gram construction.
// The list covers the common English function words that dominate contract
// prose without carrying any discriminating signal.
var stopWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also",
		"am", "an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"cannot", "could", "did", "do", "does", "doing", "down", "during",
		"each", "either", "etc", "few", "for", "from", "further", "had",
		"has", "have", "having", "he", "her", "here", "hereby", "herein",
		"hereof", "hers", "him", "his", "how", "however", "i", "if", "in",
		"into", "is", "it", "its", "itself", "may", "me", "more", "most",
		"must", "my", "neither", "no", "nor", "not", "of", "off", "on",
		"once", "only", "or", "other", "our", "ours", "out", "over", "own",
		"per", "re", "same", "shall", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "then", "there",
		"thereof", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "upon", "us", "very", "was", "we", "were",
		"what", "when", "where", "whether", "which", "while", "who", "whom",
		"why", "will", "with", "within", "without", "would", "you", "your",
		"yours",
	} {
		stopWords[w] = true
	}
}
