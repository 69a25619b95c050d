package display

import (
	"fmt"
	"io"

	"github.com/backmassage/assetopt/internal/term"
)

// PrintBanner prints the ASCII art banner to w in the accent colour.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Code(term.Accent))
	fmt.Fprint(w, `                     _              _
  __ _ ___ ___  ___| |_ ___  _ __ | |_
 / _`+"`"+` / __/ __|/ _ \ __/ _ \| '_ \| __|
| (_| \__ \__ \  __/ || (_) | |_) | |_
 \__,_|___/___/\___|\__\___/| .__/ \__|
                            |_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.Reset())
	}
}
