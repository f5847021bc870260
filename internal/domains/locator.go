package domains

const LocatorName = "locator"

type Locator interface {
	FindCandidates(root string) ([]string, error)
	SupportedExtensions() []string
}
