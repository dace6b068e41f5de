package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"popcompare/internal/models"
)

const (
	regionsRoot = "REGIONS"
	nationsRoot = "NATIONS"
)

type regionsDocument struct {
	XMLName xml.Name        `xml:"REGIONS"`
	Regions []regionElement `xml:"REGION"`
}

type regionElement struct {
	Name          string           `xml:"NAME"`
	NumNations    int              `xml:"NUMNATIONS"`
	Nations       string           `xml:"NATIONS"`
	Delegate      string           `xml:"DELEGATE"`
	DelegateVotes int              `xml:"DELEGATEVOTES"`
	DelegateAuth  string           `xml:"DELEGATEAUTH"`
	Founder       string           `xml:"FOUNDER"`
	FounderAuth   string           `xml:"FOUNDERAUTH"`
	Officers      []officerElement `xml:"OFFICERS>OFFICER"`
	Embassies     []string         `xml:"EMBASSIES>EMBASSY"`
	LastUpdate    float64          `xml:"LASTUPDATE"`
}

type officerElement struct {
	Nation    string `xml:"NATION"`
	Office    string `xml:"OFFICE"`
	Authority string `xml:"AUTHORITY"`
	Time      int64  `xml:"TIME"`
	By        string `xml:"BY"`
	Order     int    `xml:"ORDER"`
}

type nationsDocument struct {
	XMLName xml.Name        `xml:"NATIONS"`
	Nations []nationElement `xml:"NATION"`
}

type nationElement struct {
	Name         string `xml:"NAME"`
	UNStatus     string `xml:"UNSTATUS"`
	Endorsements string `xml:"ENDORSEMENTS"`
	Region       string `xml:"REGION"`
}

// ParseRegions decodes a <REGIONS> document into its regions, in document order
func ParseRegions(source, text string) ([]models.Region, error) {
	var doc regionsDocument
	if err := decode(text, &doc); err != nil {
		return nil, NewFormatError(source, regionsRoot, err)
	}

	regions := make([]models.Region, len(doc.Regions))
	for i, el := range doc.Regions {
		officers := make([]models.Officer, len(el.Officers))
		for j, o := range el.Officers {
			officers[j] = models.Officer{
				Nation:    o.Nation,
				Office:    o.Office,
				Authority: o.Authority,
				Time:      o.Time,
				By:        o.By,
				Order:     o.Order,
			}
		}
		regions[i] = models.Region{
			Name:          el.Name,
			NumNations:    el.NumNations,
			Nations:       el.Nations,
			Delegate:      el.Delegate,
			DelegateVotes: el.DelegateVotes,
			DelegateAuth:  el.DelegateAuth,
			Founder:       el.Founder,
			FounderAuth:   el.FounderAuth,
			Officers:      officers,
			Embassies:     el.Embassies,
			LastUpdate:    el.LastUpdate,
		}
	}
	return regions, nil
}

// ParseNations decodes a <NATIONS> document into its nations, in document order
func ParseNations(source, text string) ([]models.Nation, error) {
	var doc nationsDocument
	if err := decode(text, &doc); err != nil {
		return nil, NewFormatError(source, nationsRoot, err)
	}

	nations := make([]models.Nation, len(doc.Nations))
	for i, el := range doc.Nations {
		nations[i] = models.Nation{
			Name:         el.Name,
			WAStatus:     el.UNStatus,
			Endorsements: models.ParseEndorsements(el.Endorsements),
			Region:       el.Region,
		}
	}
	return nations, nil
}

// decode reads the single root element into doc. Anything after the root
// other than whitespace, comments or processing instructions is an error.
func decode(text string, doc any) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("empty document")
	}
	d := xml.NewDecoder(strings.NewReader(text))
	if err := d.Decode(doc); err != nil {
		return err
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("after root element: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return errors.New("unexpected text after root element")
			}
		}
	}
}
