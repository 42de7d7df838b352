// Command vaultbridge runs the FileVault CLI and reports normalized results.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
