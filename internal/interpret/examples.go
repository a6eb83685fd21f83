package interpret

const (
	minContentExamples = 3
	maxContentExamples = 10
)

// defaultContentExamples is what the platform receives when a request carries
// no reference links at all.
var defaultContentExamples = []string{
	"https://www.sciencenews.org/topic/health-medicine",
	"https://www.thelancet.com/",
	"https://www.the-scientist.com/tag/healthcare",
}

// NormalizeContentExamples bounds a list of reference URLs to the 3..10 window
// the platform accepts. Empty input yields the default list; short input is
// cyclically repeated up to three entries; long input is cut at ten. The
// function is idempotent on its own output.
func NormalizeContentExamples(urls []string) []string {
	if len(urls) == 0 {
		return append([]string(nil), defaultContentExamples...)
	}

	normalized := append([]string(nil), urls...)
	for len(normalized) < minContentExamples {
		normalized = append(normalized, normalized[len(normalized)%len(urls)])
	}

	if len(normalized) > maxContentExamples {
		normalized = normalized[:maxContentExamples]
	}

	return normalized
}
