//go:build amd64

package pfac

import "github.com/multipattern/pfacmatch/internal/pkg/simd"

// foldBuffer returns an ASCII-lower-cased copy of buf, using the widest
// vector width the running CPU actually reports (via internal/pkg/simd's
// cached feature detection) as a chunking hint. Go has no portable inline
// assembly here, so the "SIMD" tiers below are chunked scalar loops sized
// to match what an AVX2/SSE4.2 lowering kernel would process per
// iteration; they exist so a future arch-specific kernel can drop in
// without changing the dispatch shape in scan.go.
func foldBuffer(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	out := make([]byte, len(buf))
	features := simd.GetCPUFeatures()
	switch {
	case features.HasAVX2 && len(buf) >= 32:
		foldChunked(out, buf, 32)
	case features.HasSSE42 && len(buf) >= 16:
		foldChunked(out, buf, 16)
	default:
		foldASCII(out, buf)
	}
	return out
}

func foldChunked(dst, src []byte, chunk int) {
	i := 0
	for ; i+chunk <= len(src); i += chunk {
		foldASCII(dst[i:i+chunk], src[i:i+chunk])
	}
	foldASCII(dst[i:], src[i:])
}
