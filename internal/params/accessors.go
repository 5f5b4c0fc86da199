package params

import "fmt"

// Bool returns the value of a boolean parameter.
func (s *Store) Bool(name string) (bool, error) {
	return typed[bool](s, name, Boolean)
}

// Int returns the value of an integer parameter.
func (s *Store) Int(name string) (int64, error) {
	return typed[int64](s, name, Integer)
}

// Float returns the value of a float parameter.
func (s *Store) Float(name string) (float64, error) {
	return typed[float64](s, name, Float)
}

// Text returns the value of any text-valued parameter (string, choice or path).
func (s *Store) Text(name string) (string, error) {
	p, err := s.Get(name)
	if err != nil {
		return "", err
	}
	if !p.Type.IsText() {
		return "", fmt.Errorf("parameter %q is %s, not text", name, p.Type)
	}
	return p.Value.(string), nil
}

func typed[T any](s *Store, name string, want Type) (T, error) {
	var zero T
	p, err := s.Get(name)
	if err != nil {
		return zero, err
	}
	if p.Type != want {
		return zero, fmt.Errorf("parameter %q is %s, not %s", name, p.Type, want)
	}
	return p.Value.(T), nil
}
