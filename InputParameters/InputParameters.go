package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/intergrowth/optimizer"
	"github.com/notargets/intergrowth/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title         string       `yaml:"Title"`
	Anchor        float64      `yaml:"Anchor"`     // Grade where the step function leaves zero yield
	Points        [][2]float64 `yaml:"Points"`     // (grade, yield) corners of the step function
	StartGrade    float64      `yaml:"StartGrade"` // Starting grade of the first Horizontal point
	EndGrade      float64      `yaml:"EndGrade"`   // Starting grade of the last Horizontal point
	Guarantees    []string     `yaml:"Guarantees"` // Validations to skip: Sorted, SufficientLength, Monotonous, InBounds
	MaxIterations int          `yaml:"MaxIterations"`
	GradTol       float64      `yaml:"GradTol"`
	BoundShrink   float64      `yaml:"BoundShrink"`
	Verbose       bool         `yaml:"Verbose"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= Anchor\n", ip.Anchor)
	fmt.Printf("%8.5f\t\t= StartGrade\n", ip.StartGrade)
	fmt.Printf("%8.5f\t\t= EndGrade\n", ip.EndGrade)
	fmt.Printf("%v\t\t\t= Guarantees\n", ip.Guarantees)
	s := ip.Settings()
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", s.MaxIterations)
	fmt.Printf("%8.2e\t\t= GradTol\n", s.GradTol)
	fmt.Printf("%8.5f\t\t= BoundShrink\n", s.BoundShrink)
	for i, p := range ip.Points {
		fmt.Printf("Points[%d] = (%8.5f, %8.5f)\n", i, p[0], p[1])
	}
}

func (ip *InputParameters) StepFunction() types.StepFunction {
	ps := make(types.PointSeries, len(ip.Points))
	for i, p := range ip.Points {
		ps[i] = types.Point{X: p[0], Y: p[1]}
	}
	return types.NewStepFunction(ip.Anchor, ps)
}

func (ip *InputParameters) GuaranteeSet() (types.Guarantees, error) {
	return types.ParseGuarantees(ip.Guarantees)
}

// Settings returns the optimizer settings, unset values take the defaults
func (ip *InputParameters) Settings() (s optimizer.Settings) {
	s = optimizer.DefaultSettings()
	if ip.MaxIterations > 0 {
		s.MaxIterations = ip.MaxIterations
	}
	if ip.GradTol > 0 {
		s.GradTol = ip.GradTol
	}
	if ip.BoundShrink > 0 {
		s.BoundShrink = ip.BoundShrink
	}
	s.Verbose = ip.Verbose
	return
}
