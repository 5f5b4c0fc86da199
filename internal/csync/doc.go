// Package csync provides thread-safe concurrent data structures.
//
// OrderedMap is a generic map guarded by a read-write mutex that keeps
// keys in insertion order. The parameter store uses it so that saved
// documents list parameters in the order they were loaded, and the
// binder uses it to keep screens in registration order.
//
// Example usage:
//
//	screens := csync.NewOrderedMap[string, *Screen]()
//	screens.Set("parameters", s)
//	screens.Range(func(id string, s *Screen) bool {
//		fmt.Println(id)
//		return true // Continue iteration
//	})
//
// Update performs a read-modify-write under the write lock, so a
// validation failure inside the callback leaves the entry untouched.
package csync
