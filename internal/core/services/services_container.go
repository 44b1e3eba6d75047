package services

import (
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(dispatcher portssvc.FindingsDispatcher, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Records:   NewRecordService(options...),
		Personas:  NewPersonaService(options...),
		Analytics: NewAnalyticsService(options...),
		Findings:  NewFindingsService(dispatcher, options...),
	}
}
