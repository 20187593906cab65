package mmcif

// Export some internal functions for testing

func (s *cmmtScanner) Cbytes() []byte { return s.cbytes() }
func (s *cmmtScanner) Cscan() bool    { return s.cscan() }

var NewCmmtScanner = newCmmtScanner
var SplitCifLine = splitCifLine
