package usecases

import "github.com/iwtcode/mechanismAdapter/internal/interfaces"

// NewUsecases - конструктор для UseCases
func NewUsecases(
	mechanismSvc interfaces.MechanismService,
) interfaces.Usecases {
	return NewUsecase(mechanismSvc)
}
