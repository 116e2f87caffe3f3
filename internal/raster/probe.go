package raster

import (
	"bytes"
	"encoding/binary"
	"image/gif"
	"math"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/pixelmill/pixelmill/internal/imagetype"
)

// densityFloorPPI is 1.0 pixels per millimetre expressed as pixels per
// inch. Resolutions at or below it are indistinguishable from an unset
// default and are not reported.
const densityFloorPPI = 25.4

// Probe derives the source facts for the handle from the raw bytes.
// It never fails: absent or unreadable metadata simply leaves the zero
// value in place.
func Probe(data []byte, typ imagetype.ImageType) Metadata {
	meta := Metadata{SourceType: typ}

	switch typ {
	case imagetype.JPEG:
		probeJPEG(data, &meta)
		probeEXIF(data, &meta)
	case imagetype.PNG:
		probePNG(data, &meta)
	case imagetype.GIF:
		probeGIF(data, &meta)
	case imagetype.TIFF:
		probeEXIF(data, &meta)
	}
	return meta
}

// probeEXIF reads the orientation tag and the stored resolution. Works
// for JPEG (APP1) and raw TIFF containers.
func probeEXIF(data []byte, meta *Metadata) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}

	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil && o >= 1 && o <= 8 {
			meta.Orientation = o
		}
	}

	tag, err := x.Get(exif.XResolution)
	if err != nil {
		return
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return
	}
	ppi := float64(num) / float64(den)
	if unit, err := x.Get(exif.ResolutionUnit); err == nil {
		if u, err := unit.Int(0); err == nil && u == 3 {
			ppi *= 2.54 // stored per centimetre
		}
	}
	if ppi > densityFloorPPI {
		meta.DensityPPI = int(math.Round(ppi))
	}
}

// probeJPEG walks the segment list up to the first scan, collecting the
// progressive flag, chroma subsampling and ICC profile presence.
func probeJPEG(data []byte, meta *Metadata) {
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xff {
			return
		}
		marker := data[i+1]
		// Fill bytes may pad the gap before a marker; the last 0xff is
		// the one that starts it.
		if marker == 0xff {
			i++
			continue
		}
		// Standalone markers carry no length.
		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd9) {
			i += 2
			continue
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if segLen < 2 || i+2+segLen > len(data) {
			return
		}
		payload := data[i+4 : i+2+segLen]

		switch marker {
		case 0xc2, 0xc6, 0xca, 0xce: // progressive SOF variants
			meta.Progressive = true
			meta.ChromaSubsampling = chromaFromSOF(payload)
		case 0xc0, 0xc1, 0xc5, 0xc9, 0xcd: // sequential SOF variants
			meta.ChromaSubsampling = chromaFromSOF(payload)
		case 0xe2: // APP2
			if bytes.HasPrefix(payload, []byte("ICC_PROFILE\x00")) {
				meta.HasProfile = true
			}
		case 0xda: // start of scan, nothing interesting past here
			return
		}
		i += 2 + segLen
	}
}

// chromaFromSOF maps the first component's sampling factors of a
// three-component frame onto the usual subsampling names.
func chromaFromSOF(payload []byte) string {
	// precision(1) height(2) width(2) ncomp(1) then 3 bytes per component
	if len(payload) < 6 || payload[5] != 3 || len(payload) < 6+9 {
		return ""
	}
	switch payload[7] { // sampling of component 0: hi<<4 | vi
	case 0x22:
		return "4:2:0"
	case 0x21:
		return "4:2:2"
	case 0x12:
		return "4:4:0"
	case 0x11:
		return "4:4:4"
	default:
		return ""
	}
}

// probePNG walks the chunk list up to the first IDAT.
func probePNG(data []byte, meta *Metadata) {
	i := 8
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i:]))
		typ := string(data[i+4 : i+8])
		if i+8+length > len(data) {
			return
		}
		chunk := data[i+8 : i+8+length]

		switch typ {
		case "IHDR":
			if len(chunk) >= 13 {
				if chunk[9] == 3 { // indexed color
					meta.PaletteBitDepth = int(chunk[8])
				}
				meta.Progressive = chunk[12] == 1 // Adam7
			}
		case "iCCP":
			meta.HasProfile = true
		case "pHYs":
			if len(chunk) >= 9 && chunk[8] == 1 { // pixels per metre
				ppm := float64(binary.BigEndian.Uint32(chunk[0:4]))
				ppi := ppm / 1000 * 25.4
				if ppi > densityFloorPPI {
					meta.DensityPPI = int(math.Round(ppi))
				}
			}
		case "IDAT", "IEND":
			return
		}
		i += 12 + length
	}
}

// probeGIF records palette depth and the animation metadata. Frame
// delays are stored in centiseconds by the format and normalized to
// milliseconds here.
func probeGIF(data []byte, meta *Metadata) {
	if len(data) > 10 {
		if flags := data[10]; flags&0x80 != 0 {
			meta.PaletteBitDepth = int(flags&0x07) + 1
		}
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil || len(g.Image) == 0 {
		return
	}
	meta.Pages = len(g.Image)
	meta.PageHeight = g.Config.Height
	if g.LoopCount >= 0 {
		loop := g.LoopCount
		meta.Loop = &loop
	}
	meta.DelayMS = make([]int, len(g.Delay))
	for i, d := range g.Delay {
		meta.DelayMS[i] = d * 10
	}
}
