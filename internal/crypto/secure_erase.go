package crypto

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// secureEraseNoop prevents the compiler from optimizing away the memory
// clearing operation. By using it in a way that appears to have side
// effects, the compiler must keep the clearing code.
var secureEraseNoop atomic.Uint64

// SecureErase overwrites the contents of a byte slice with zeros.
// It takes pains to prevent the compiler from optimizing away the clearing.
//
// Note: Despite these measures, remnants of the data may remain in memory,
// caches, registers, or swap space. Fixture key material is low-stakes,
// but discarded seeds still get wiped rather than left around.
//
// See: http://www.daemonology.net/blog/2014-09-04-how-to-zero-a-buffer.html
func SecureErase(b []byte) {
	if len(b) == 0 {
		return
	}

	// Write zeros through a pointer the compiler cannot prove is not
	// aliased elsewhere.
	p := (*byte)(unsafe.Pointer(&b[0]))
	for i := 0; i < len(b); i++ {
		*(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + uintptr(i))) = 0
	}

	runtime.KeepAlive(b)

	// Touch the data so the compiler must believe the contents matter.
	var sum uint64
	for i := 0; i < len(b); i++ {
		sum += uint64(b[i])
	}
	secureEraseNoop.Add(sum)
}
