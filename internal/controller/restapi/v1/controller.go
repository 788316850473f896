package v1

import (
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
)

type V1 struct {
	scan   usecase.ScanUseCase
	chk    usecase.CheckInUseCase
	sink   infrastructure.ResultSink
	logger logger.Interface
}
