package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Key         string `json:"key"`
	StorageType string `json:"storage_type"`
	Watchable   bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	storageType := "unknown"
	_, watchable := s.store.storage.(Watchable)
	if comp, ok := s.store.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return ServiceState{
		Key:         s.store.Key(),
		StorageType: storageType,
		Watchable:   watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
