package ui

// pagerMsg contains the result of a results pager command
type pagerMsg struct {
	err error
}
