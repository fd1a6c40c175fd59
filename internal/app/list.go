package app

import "context"

// List returns the installed widgets in installation order.
func (s Service) List(ctx context.Context) (ListResult, error) {
	widgets, err := s.Registry.List()
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Widgets: widgets}, nil
}
