package codegen

import "fmt"

// coerceForOutput wraps value in the runtime toX helper matching the
// output's declared type. Only numeric outputs get wrapped; any other
// output type passes the value through unchanged.
func coerceForOutput(hostType string, value string) string {
	switch hostType {
	case "int":
		return fmt.Sprintf("Runtime.toInt(%s)", value)
	case "long":
		return fmt.Sprintf("Runtime.toLong(%s)", value)
	case "float":
		return fmt.Sprintf("Runtime.toFloat(%s)", value)
	case "double":
		return fmt.Sprintf("Runtime.toDouble(%s)", value)
	case "BigInteger":
		return fmt.Sprintf("Runtime.toBigInteger(%s)", value)
	case "BigDecimal":
		return fmt.Sprintf("Runtime.toBigDecimal(%s)", value)
	default:
		return value
	}
}
