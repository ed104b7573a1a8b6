package testaudio

import (
	"bytes"
	"encoding/binary"
)

// MP3Silence returns frames MPEG-1 Layer III frames of digital silence,
// stereo at 44100 Hz and 128 kbit/s. Every frame has empty side info, so each
// one decodes to 1152 zero frames.
func MP3Silence(frames int) []byte {
	// 144 * 128000 / 44100, no padding
	const frameSize = 417
	header := []byte{0xFF, 0xFB, 0x90, 0x00}
	out := make([]byte, 0, frames*frameSize)
	for range frames {
		out = append(out, header...)
		out = append(out, make([]byte, frameSize-len(header))...)
	}
	return out
}

// OggVorbisSilence returns an Ogg Vorbis stream, stereo at 44100 Hz, with
// packets audio packets that decode to silence. All blocks are 256 samples
// long; the first packet only primes the overlap, every later one yields 128
// frames.
func OggVorbisSilence(packets int) []byte {
	var pages bytes.Buffer
	writeOggPage(&pages, 0x02, 0, 0, [][]byte{vorbisIdentification()})
	writeOggPage(&pages, 0, 0, 1, [][]byte{vorbisComment(), vorbisSetup()})
	audio := make([][]byte, packets)
	for i := range audio {
		// audio packet, mode 0, floor of both channels unused
		audio[i] = []byte{0x00}
	}
	granule := int64(max(packets-1, 0) * 128)
	writeOggPage(&pages, 0x04, granule, 2, audio)
	return pages.Bytes()
}

func vorbisIdentification() []byte {
	var b bytes.Buffer
	b.WriteByte(1)
	b.WriteString("vorbis")
	binary.Write(&b, binary.LittleEndian, uint32(0))     // version
	b.WriteByte(2)                                       // channels
	binary.Write(&b, binary.LittleEndian, uint32(44100)) // rate
	binary.Write(&b, binary.LittleEndian, [3]int32{})    // bitrates
	b.WriteByte(0x88)                                    // both block sizes 2^8
	b.WriteByte(1)                                       // framing
	return b.Bytes()
}

func vorbisComment() []byte {
	const vendor = "gamemixer"
	var b bytes.Buffer
	b.WriteByte(3)
	b.WriteString("vorbis")
	binary.Write(&b, binary.LittleEndian, uint32(len(vendor)))
	b.WriteString(vendor)
	binary.Write(&b, binary.LittleEndian, uint32(0)) // no comments
	b.WriteByte(1)
	return b.Bytes()
}

// vorbisSetup describes the smallest useful decoder: one two-entry codebook,
// one floor 1 without partitions, one empty residue, one mapping and one
// short-block mode.
func vorbisSetup() []byte {
	var w bitWriter
	for _, c := range []byte("\x05vorbis") {
		w.write(uint32(c), 8)
	}

	w.write(0, 8)         // codebooks - 1
	w.write(0x564342, 24) // codebook sync
	w.write(1, 16)        // dimensions
	w.write(2, 24)        // entries
	w.write(0, 1)         // not ordered
	w.write(0, 1)         // not sparse
	w.write(0, 5)         // entry 0 length - 1
	w.write(0, 5)         // entry 1 length - 1
	w.write(0, 4)         // no lookup table

	w.write(0, 6) // time domain transforms - 1
	w.write(0, 16)

	w.write(0, 6)  // floors - 1
	w.write(1, 16) // floor type 1
	w.write(0, 5)  // partitions
	w.write(0, 2)  // multiplier - 1
	w.write(8, 4)  // range bits

	w.write(0, 6)  // residues - 1
	w.write(2, 16) // residue type 2
	w.write(0, 24) // begin
	w.write(0, 24) // end
	w.write(0, 24) // partition size - 1
	w.write(0, 6)  // classifications - 1
	w.write(0, 8)  // classbook
	w.write(0, 3)  // cascade low bits
	w.write(0, 1)  // no cascade high bits

	w.write(0, 6)  // mappings - 1
	w.write(0, 16) // mapping type 0
	w.write(0, 1)  // one submap
	w.write(0, 1)  // no coupling
	w.write(0, 2)  // reserved
	w.write(0, 8)  // submap time
	w.write(0, 8)  // submap floor
	w.write(0, 8)  // submap residue

	w.write(0, 6)  // modes - 1
	w.write(0, 1)  // short blocks
	w.write(0, 16) // window type
	w.write(0, 16) // transform type
	w.write(0, 8)  // mapping

	w.write(1, 1) // framing
	return w.buf
}

// bitWriter packs values least significant bit first, as Vorbis does.
type bitWriter struct {
	buf []byte
	n   uint
}

func (w *bitWriter) write(v uint32, bits uint) {
	for i := uint(0); i < bits; i++ {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		w.buf[len(w.buf)-1] |= byte(v>>i&1) << (w.n % 8)
		w.n++
	}
}

func writeOggPage(out *bytes.Buffer, flags byte, granule int64, seq uint32, packets [][]byte) {
	var lacing, body []byte
	for _, p := range packets {
		n := len(p)
		for ; n >= 255; n -= 255 {
			lacing = append(lacing, 255)
		}
		lacing = append(lacing, byte(n))
		body = append(body, p...)
	}

	page := make([]byte, 27, 27+len(lacing)+len(body))
	copy(page, "OggS")
	page[5] = flags
	binary.LittleEndian.PutUint64(page[6:], uint64(granule))
	binary.LittleEndian.PutUint32(page[14:], 1) // stream serial
	binary.LittleEndian.PutUint32(page[18:], seq)
	page[26] = byte(len(lacing))
	page = append(page, lacing...)
	page = append(page, body...)
	binary.LittleEndian.PutUint32(page[22:], oggCRC(page))
	out.Write(page)
}

var oggCRCTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func oggCRC(page []byte) uint32 {
	var crc uint32
	for _, b := range page {
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}
