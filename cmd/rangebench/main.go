// Command rangebench measures the execution policies of the parallel package
// on sample per-element payloads.
package main

func main() {
	Execute()
}
