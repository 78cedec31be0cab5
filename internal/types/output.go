package types

// BundleEntry is one file stored in an archive.
type BundleEntry struct {
	Name   string
	Size   int64
	Digest string
}

// ComponentOutcome records the result of one component's build invocation.
type ComponentOutcome struct {
	Name    string
	Command string
	Output  string
	Stderr  string
	Err     error
}
