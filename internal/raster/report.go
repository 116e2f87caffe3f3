package raster

import "encoding/json"

// Report is the structured description of the input image returned for
// output=json requests. Optional fields appear only when the source
// carried the corresponding metadata.
type Report struct {
	Format            string `json:"format"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	Space             string `json:"space"`
	Channels          int    `json:"channels"`
	Depth             string `json:"depth"`
	Density           int    `json:"density,omitempty"`
	ChromaSubsampling string `json:"chromaSubsampling,omitempty"`
	IsProgressive     bool   `json:"isProgressive"`
	PaletteBitDepth   int    `json:"paletteBitDepth,omitempty"`
	Pages             int    `json:"pages,omitempty"`
	PageHeight        int    `json:"pageHeight,omitempty"`
	Loop              *int   `json:"loop,omitempty"`
	Delay             []int  `json:"delay,omitempty"`
	PagePrimary       *int   `json:"pagePrimary,omitempty"`
	HasProfile        bool   `json:"hasProfile"`
	HasAlpha          bool   `json:"hasAlpha"`
	Orientation       int    `json:"orientation"`
}

// Report builds the metadata report for the handle's source image.
func (im *Image) Report() Report {
	return Report{
		Format:            im.Meta.SourceType.String(),
		Width:             im.Width(),
		Height:            im.Height(),
		Space:             Space(im.Pix),
		Channels:          Channels(im.Pix),
		Depth:             Depth(im.Pix),
		Density:           im.Meta.DensityPPI,
		ChromaSubsampling: im.Meta.ChromaSubsampling,
		IsProgressive:     im.Meta.Progressive,
		PaletteBitDepth:   im.Meta.PaletteBitDepth,
		Pages:             im.Meta.Pages,
		PageHeight:        im.Meta.PageHeight,
		Loop:              im.Meta.Loop,
		Delay:             im.Meta.DelayMS,
		HasProfile:        im.Meta.HasProfile,
		HasAlpha:          HasAlpha(im.Pix),
		Orientation:       im.Meta.Orientation,
	}
}

// JSON renders the report in its wire form.
func (r Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// ParseReport reads a report back from its wire form.
func ParseReport(data []byte) (Report, error) {
	var r Report
	err := json.Unmarshal(data, &r)
	return r, err
}
