package domains

type Domain interface {
	ConnectDependencies() error
	Start() error
}

// Stopper is implemented by domains holding resources that must be released
// before the process exits.
type Stopper interface {
	Stop() error
}
