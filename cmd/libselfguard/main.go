// Command libselfguard builds the C-callable surface of the monitor.
// Compile with:
//
//	go build -buildmode=c-shared -o libselfguard.so ./cmd/libselfguard
//
// The exported functions return the stable integer vocabulary: verdicts
// SAFE=0 / WARNING=1 / COMPROMISED=2 and results OK=0 through
// ERR_INTERNAL=-4.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/mrwhite4939/selfguard"

//export SelfguardInit
func SelfguardInit() C.int32_t {
	return C.int32_t(selfguard.ResultCode(selfguard.Init()))
}

//export SelfguardSnapshot
func SelfguardSnapshot() C.int32_t {
	return C.int32_t(selfguard.ResultCode(selfguard.Snapshot()))
}

//export SelfguardCheckIntegrity
func SelfguardCheckIntegrity(mask C.uint32_t) C.int32_t {
	return C.int32_t(selfguard.ResultCode(selfguard.CheckIntegrity(selfguard.Check(mask))))
}

//export SelfguardDetectDebugger
func SelfguardDetectDebugger() C.int32_t {
	return C.int32_t(selfguard.DetectDebugger())
}

//export SelfguardGetSecurityState
func SelfguardGetSecurityState() C.uint32_t {
	return C.uint32_t(selfguard.State())
}

//export SelfguardShutdown
func SelfguardShutdown() C.int32_t {
	return C.int32_t(selfguard.ResultCode(selfguard.Shutdown()))
}

//export SelfguardImplementation
func SelfguardImplementation() *C.char {
	// The caller owns the returned string and frees it with free(3).
	return C.CString(selfguard.Implementation())
}

func main() {}
