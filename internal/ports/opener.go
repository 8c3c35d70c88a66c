package ports

// URLOpener opens web pages outside the terminal
type URLOpener interface {
	Open(url string) error
}
