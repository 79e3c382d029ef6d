package main

func main() {
	rootCmd := NewRootCmd()
	exitOnError(rootCmd.Execute())
}
