package camera

import (
	"fmt"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

// ResponseError is a non-OK response from the camera. The exchange
// itself completed; the code carries the camera's verdict, and the
// caller decides whether to retry, skip, or surface it.
type ResponseError struct {
	// Op is the operation the camera rejected.
	Op wire.OpCode

	// Code is the response code the camera answered with.
	Code wire.RespCode
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Code)
}
