// Command gcctl runs list and tree workloads against a shadowgc heap and
// reports what the collector reclaimed.
package main

func main() {
	execute()
}
