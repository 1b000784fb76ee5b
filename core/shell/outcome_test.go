package shell

import "fmt"

func ExampleOutcome_String() {
	fmt.Println(ExitedWithCode(0))
	fmt.Println(ExitedWithCode(7))
	fmt.Println(TerminatedAbnormally())

	// Output: Command completed with return code: 0
	// Command completed with return code: 7
	// Command terminated abnormally
}
