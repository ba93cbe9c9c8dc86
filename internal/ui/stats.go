package ui

type Stats struct {
	Cards   int
	Entries int
	Skipped int
	Files   int
	Bytes   int64
}
