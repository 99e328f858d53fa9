package pos

// ExtraBits is the number of bits the f functions add on top of k. A y value
// is k + ExtraBits wide, which lowers the number of collisions in matches.
const ExtraBits = 6

const f1BlockBits = chacha8BlockSize * 8

// f1Calculator evaluates F1 for one plot seed. It is not safe to share between
// goroutines because it reuses its keystream buffers.
type f1Calculator struct {
	k      uint8
	cipher *chacha8
	blocks [2 * chacha8BlockSize]byte
}

func newF1Calculator(k uint8, seed *[32]byte) *f1Calculator {
	var key [32]byte
	// the first byte is the table index
	key[0] = 1
	copy(key[1:], seed[:31])
	return &f1Calculator{k: k, cipher: newChaCha8(&key)}
}

// calculate returns F1(x), a k+ExtraBits wide y value.
func (f *f1Calculator) calculate(x uint64) uint64 {
	k := uint(f.k)
	counterBit := x * uint64(k)
	counter := counterBit / f1BlockBits
	before := uint(counterBit % f1BlockBits)

	var block [chacha8BlockSize]byte
	f.cipher.keystream(counter, &block)
	copy(f.blocks[:chacha8BlockSize], block[:])
	if before+k > f1BlockBits {
		f.cipher.keystream(counter+1, &block)
		copy(f.blocks[chacha8BlockSize:], block[:])
	}

	out := sliceUint64(f.blocks[:], before, k)

	// the leading ExtraBits of x, zero padded when k is smaller
	var extra uint64
	if k >= ExtraBits {
		extra = x >> (k - ExtraBits)
	} else {
		extra = x << (ExtraBits - k)
	}
	return out<<ExtraBits | extra
}
