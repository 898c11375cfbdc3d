package errors

type ExitCode int

const (
	ExitSuccess         ExitCode = 0
	ExitGeneralError    ExitCode = 1
	ExitConfigError     ExitCode = 2
	ExitValidationError ExitCode = 3
	ExitTemplateError   ExitCode = 4
	ExitContentError    ExitCode = 5
	ExitIOError         ExitCode = 6
)

func (e ExitCode) Int() int {
	return int(e)
}
