package diag

var IsTerminal = &isTerminal
