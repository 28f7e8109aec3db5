package sales

import (
	"LealCafeBackOffice/internal/serviceiface"
)

type SalesService struct {
	config map[string]interface{}
}

func NewSalesService(cfg map[string]interface{}) serviceiface.Service {
	return &SalesService{config: cfg}
}

func (s *SalesService) Name() string {
	return "sales"
}

func (s *SalesService) Start() error {
	go StartSalesService()
	return nil
}

func (s *SalesService) Stop() error {
	// Implement stop logic if needed
	return nil
}
