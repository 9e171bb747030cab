package history_test

import (
	"fmt"

	"github.com/dshills/revertable/history"
)

func ExampleStack() {
	s := history.New(100)

	*s.Mut() = 200
	*s.Mut() = 300
	fmt.Println(s.Get(), s.Len())

	_ = s.Revert()
	fmt.Println(s.Get(), s.Len())

	_ = s.Commit()
	fmt.Println(s.Get(), s.Len())

	fmt.Println(s.Commit())
	// Output:
	// 300 2
	// 200 1
	// 200 0
	// Transaction not started
}

func ExampleStack_RevertAll() {
	s := history.New([]string{"draft"})
	s.Update(func(v *[]string) { *v = append(*v, "edit") })
	s.Update(func(v *[]string) { *v = append(*v, "more") })

	_ = s.RevertAll()
	fmt.Println(s.Get(), s.Changed())
	// Output:
	// [draft] false
}
