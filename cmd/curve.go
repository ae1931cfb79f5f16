/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/intergrowth/InputParameters"
	"github.com/notargets/intergrowth/intergrowth"
	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
)

type ModelCurve struct {
	ICFile        string
	Optimize      bool
	Samples       int
	MaxIterations int
	GradTol       float64
	Profile       string
}

// CurveCmd represents the curve command
var CurveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Build the washability curve for a step function read from a YAML file",
	Long: `
Builds the initial PCHIP curve for the step function in the input file and, with
--optimize, the area balanced curve. The result is printed as YAML,

intergrowth curve -I input.yaml --optimize --samples 21`,
	Run: func(cmd *cobra.Command, args []string) {
		mc := &ModelCurve{
			ICFile:        viper.GetString("inputConditionsFile"),
			Optimize:      viper.GetBool("optimize"),
			Samples:       viper.GetInt("samples"),
			MaxIterations: viper.GetInt("maxIterations"),
			GradTol:       viper.GetFloat64("gradTol"),
			Profile:       viper.GetString("profile"),
		}
		ip := processInput(mc)
		var out []byte
		err := func() (err error) {
			switch mc.Profile {
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
			case "mem":
				defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
			}
			var report *Report
			if report, err = RunCurve(mc, ip); err != nil {
				return
			}
			out, err = yaml.Marshal(report)
			return
		}()
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

func processInput(mc *ModelCurve) (ip *InputParameters.InputParameters) {
	var (
		err  error
		data []byte
	)
	if len(mc.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
Anchor: 0.2
Points: [[0.4, 0.3], [0.5, 0.5], [0.8, 0.8]]
StartGrade: 0.125
EndGrade: 0.925
MaxIterations: 1000 # Optional
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if mc.ICFile, err = homedir.Expand(mc.ICFile); err != nil {
		panic(err)
	}
	if data, err = ioutil.ReadFile(mc.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(CurveCmd)
	CurveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Anchor, Points (the step function)\n\t- StartGrade, EndGrade")
	CurveCmd.Flags().BoolP("optimize", "o", false, "move the control points until the curve balances the step function")
	CurveCmd.Flags().IntP("samples", "n", 0, "number of evenly spaced curve samples to include in the output")
	CurveCmd.Flags().Int("maxIterations", 0, "iteration cap of the optimizer, overrides the input file")
	CurveCmd.Flags().Float64("gradTol", 0, "gradient tolerance of the optimizer, overrides the input file")
	CurveCmd.Flags().String("profile", "", "write a profile of the run to the current directory: cpu or mem")
	if err := viper.BindPFlags(CurveCmd.Flags()); err != nil {
		panic(err)
	}
}

// Report is the YAML output of the curve command
type Report struct {
	Title        string       `json:"title,omitempty"`
	Optimized    bool         `json:"optimized"`
	BreakPoints  []float64    `json:"breakPoints"`
	Coefficients [][]float64  `json:"coefficients"` // Row k multiplies (x - breakPoint)^k
	Residuals    []Residual   `json:"residuals"`
	Objective    float64      `json:"objective"`
	Status       string       `json:"status,omitempty"`
	MedianGrade  types.Point  `json:"medianGrade"`
	Samples      [][2]float64 `json:"samples,omitempty"`
}

type Residual struct {
	Grade float64 `json:"grade"`
	Yield float64 `json:"yield"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// RunCurve builds, and optionally optimizes, the curve described by ip
func RunCurve(mc *ModelCurve, ip *InputParameters.InputParameters) (report *Report, err error) {
	var (
		g types.Guarantees
		c *intergrowth.Curve
	)
	if g, err = ip.GuaranteeSet(); err != nil {
		return
	}
	if c, err = intergrowth.BuildInitialCurve(ip.StepFunction(), ip.StartGrade, ip.EndGrade, g); err != nil {
		err = fmt.Errorf("unable to build the initial curve: %w", err)
		return
	}
	report = &Report{Title: ip.Title}
	var (
		s      = c.Initial
		points = c.Bounds
	)
	if mc.Optimize {
		settings := ip.Settings()
		if mc.MaxIterations > 0 {
			settings.MaxIterations = mc.MaxIterations
		}
		if mc.GradTol > 0 {
			settings.GradTol = mc.GradTol
		}
		sol := c.Optimize(settings)
		if sol.Err != nil {
			fmt.Printf("optimizer: %s\n", sol.Err.Error())
		}
		s, points = sol.Spline, sol.Points
		report.Optimized = true
		report.Status = sol.Status.String()
	}
	for _, r := range intergrowth.ResidualAreas(points, s) {
		report.Residuals = append(report.Residuals, Residual{
			Grade: r.Point.X,
			Yield: r.Point.Y,
			Left:  r.Left,
			Right: r.Right,
		})
		report.Objective += math.Abs(r.Net())
	}
	report.BreakPoints = s.BreakPoints()
	report.Coefficients = coefficientRows(s)
	if report.MedianGrade, err = intergrowth.MedianGrade(s); err != nil {
		return
	}
	if mc.Samples > 0 {
		for _, p := range s.Sample(mc.Samples) {
			report.Samples = append(report.Samples, [2]float64{p.X, p.Y})
		}
	}
	return
}

func coefficientRows(s *spline.Spline) (rows [][]float64) {
	c := s.Coefficients()
	nr, _ := c.Dims()
	rows = make([][]float64, nr)
	for k := range rows {
		rows[k] = mat.Row(nil, k, c)
	}
	return
}
