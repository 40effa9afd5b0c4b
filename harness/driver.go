// Package harness drives the live loan calculator modal through a browser
// and checks what it shows against the reference calculator.
package harness

// Driver is the slice of browser automation the scenarios need. Selectors use
// Playwright syntax.
type Driver interface {
	Navigate(url string) error
	Fill(selector, value string) error
	Click(selector string) error
	// ClickAt clicks page coordinates, used to dismiss the modal.
	ClickAt(x, y float64) error
	Text(selector string) (string, error)
	Value(selector string) (string, error)
	Visible(selector string) (bool, error)
}

// Resetter is implemented by drivers that can start a scenario from a clean
// browser state (cookies, storage, open page).
type Resetter interface {
	Reset() error
}
