// Command keggprofiler builds a catalog of compiled KEGG module
// pathways and profiles how complete each module is against observed
// KO sets.
package main

func main() {
	Execute()
}
