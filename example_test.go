package vkv

import (
	"fmt"
	"sort"
)

func ExampleStore_Save() {
	s := NewStore[string, string]()
	s.Set("greeting", "hello")
	v := s.Save()
	s.Set("greeting", "hi")
	fmt.Println(s.Get("greeting"))
	fmt.Println(s.GetAt("greeting", v))
	// Output:
	// hi
	// hello
}

func ExampleStore_DiffIter() {
	s := NewStore[int, string]()
	s.Set(0, "foo")
	s.Set(100, "asdf")
	v1 := s.Save()
	s.Set(0, "bar")
	s.Delete(100)
	s.Set(200, "qwerty")
	v2 := s.Save()
	var lines []string
	s.DiffIter(v1, v2, func(added, removed bool, key int, addedValue, removedValue string) (bool, error) {
		if added && removed {
			lines = append(lines, fmt.Sprintf("changed '%v'   from '%v' to '%v'", key, removedValue, addedValue))
		} else if removed {
			lines = append(lines, fmt.Sprintf("removed '%v' value '%v'", key, removedValue))
		} else if added {
			lines = append(lines, fmt.Sprintf("added   '%v' value '%v'", key, addedValue))
		}
		return true, nil
	})
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Println(line)
	}
	// Output:
	// added   '200' value 'qwerty'
	// changed '0'   from 'foo' to 'bar'
	// removed '100' value 'asdf'
}

func ExampleStore_Size() {
	s := NewStore[int, string]()
	s.Set(0, "zero")
	s.Set(1, "one")
	v := s.Save()
	s.Delete(0)
	fmt.Println(s.Size())
	fmt.Println(s.SizeAt(v))
	// Output:
	// 1
	// 2
}
