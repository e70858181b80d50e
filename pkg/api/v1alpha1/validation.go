/*
Copyright 2024 The Kubernetes Authors.

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

package v1alpha1

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// ValidateLabelingArgs validates defaulted LabelingArgs. All problems are
// collected into a single ConfigError.
func ValidateLabelingArgs(args *LabelingArgs) error {
	var allErrs field.ErrorList

	if args.H < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("h"), args.H, "must be non-negative"))
	}
	if args.K < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("k"), args.K, "must be non-negative"))
	}
	if args.MaxLabel < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("maxLabel"), args.MaxLabel, "must be positive when set"))
	}
	if args.MaxTime.Duration <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("maxTime"), args.MaxTime.String(), "must be positive"))
	}
	allErrs = append(allErrs, validateEvaluatorArgs(args.Evaluator, field.NewPath("evaluator"))...)

	switch args.Engine {
	case EngineGenetic:
		allErrs = append(allErrs, validateGeneticArgs(args.Genetic, field.NewPath("genetic"))...)
	case EngineAnnealing:
		allErrs = append(allErrs, validateAnnealingArgs(args.Annealing, field.NewPath("annealing"))...)
	default:
		allErrs = append(allErrs, field.NotSupported(field.NewPath("engine"), args.Engine, []string{string(EngineGenetic), string(EngineAnnealing)}))
	}

	if len(allErrs) == 0 {
		return nil
	}
	return &framework.ConfigError{Err: allErrs.ToAggregate()}
}

func validateEvaluatorArgs(args *EvaluatorArgs, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if args == nil {
		return append(allErrs, field.Required(path, "evaluator must be defaulted"))
	}
	switch args.ChromaticPolicy {
	case ChromaticPolicyDistinctCount, ChromaticPolicyMaxLabel:
	default:
		allErrs = append(allErrs, field.NotSupported(path.Child("chromaticPolicy"), args.ChromaticPolicy,
			[]string{ChromaticPolicyDistinctCount, ChromaticPolicyMaxLabel}))
	}

	var sum float64
	weights := []struct {
		name  string
		value *float64
	}{
		{name: "conflictWeight", value: args.ConflictWeight},
		{name: "chromaticWeight", value: args.ChromaticWeight},
	}
	for _, w := range weights {
		switch {
		case w.value == nil:
			allErrs = append(allErrs, field.Required(path.Child(w.name), ""))
		case *w.value < 0 || math.IsNaN(*w.value) || math.IsInf(*w.value, 0):
			allErrs = append(allErrs, field.Invalid(path.Child(w.name), *w.value, "must be a non-negative number"))
		default:
			sum += *w.value
		}
	}
	if args.ConflictWeight != nil && args.ChromaticWeight != nil && sum <= 0 {
		allErrs = append(allErrs, field.Invalid(path, sum, "weights must have a positive sum"))
	}
	if args.ChromaticBound < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("chromaticBound"), args.ChromaticBound, "must be non-negative"))
	}
	return allErrs
}

func validateGeneticArgs(args *GeneticArgs, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if args == nil {
		return append(allErrs, field.Required(path, "required by the GA engine"))
	}
	if args.Islands < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("islands"), args.Islands, "must be at least 1"))
	}
	if args.IslandSize < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("islandSize"), args.IslandSize, "must be at least 1"))
	}
	if args.Elites < 0 || args.Elites > args.IslandSize {
		allErrs = append(allErrs, field.Invalid(path.Child("elites"), args.Elites, fmt.Sprintf("must be in [0,%d]", max(args.IslandSize, 0))))
	}
	if !(args.MutationChance >= 0 && args.MutationChance <= 1) {
		allErrs = append(allErrs, field.Invalid(path.Child("mutationChance"), args.MutationChance, "must be in [0,1]"))
	}
	if args.MaxGenerations < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxGenerations"), args.MaxGenerations, "must be at least 1"))
	}
	if !(args.TournamentFraction > 0 && args.TournamentFraction <= 1) {
		allErrs = append(allErrs, field.Invalid(path.Child("tournamentFraction"), args.TournamentFraction, "must be in (0,1]"))
	}
	if args.WarmStart < 0 || args.WarmStart > args.Islands*args.IslandSize {
		allErrs = append(allErrs, field.Invalid(path.Child("warmStart"), args.WarmStart,
			fmt.Sprintf("must be in [0,%d]", max(args.Islands*args.IslandSize, 0))))
	}
	if _, ok := algorithms.CrossoverByName(args.Crossover); !ok {
		allErrs = append(allErrs, field.NotSupported(path.Child("crossover"), args.Crossover,
			[]string{CrossoverFitnessProportional, CrossoverUniform}))
	}
	return allErrs
}

func validateAnnealingArgs(args *AnnealingArgs, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if args == nil {
		return append(allErrs, field.Required(path, "required by the SA engine"))
	}
	if !(args.Temperature > 0) || math.IsInf(args.Temperature, 1) {
		allErrs = append(allErrs, field.Invalid(path.Child("temperature"), args.Temperature, "must be positive"))
	}
	if !(args.CoolingFactor > 0 && args.CoolingFactor < 1) {
		allErrs = append(allErrs, field.Invalid(path.Child("coolingFactor"), args.CoolingFactor, "must be in (0,1)"))
	}
	if args.MaxIterations < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxIterations"), args.MaxIterations, "must be at least 1"))
	}
	if !(args.MinTemperature > 0) {
		allErrs = append(allErrs, field.Invalid(path.Child("minTemperature"), args.MinTemperature, "must be positive"))
	}
	switch args.CoolingFloor {
	case CoolingFloorZero, CoolingFloorEpsilon:
	default:
		allErrs = append(allErrs, field.NotSupported(path.Child("coolingFloor"), args.CoolingFloor,
			[]string{CoolingFloorZero, CoolingFloorEpsilon}))
	}
	if args.Restarts < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("restarts"), args.Restarts, "must be at least 1"))
	}
	return allErrs
}

// ValidateBackbone checks the fixed labels of g against args. With a
// MaxLabel every fixed label must lie in [1, MaxLabel].
func ValidateBackbone(args *LabelingArgs, g *framework.Graph) error {
	if args.MaxLabel <= 0 {
		return nil
	}
	var allErrs field.ErrorList
	path := field.NewPath("backbone")
	for v := 0; v < g.VertexCount(); v++ {
		if label, fixed := g.Fixed(v); fixed && label > args.MaxLabel {
			allErrs = append(allErrs, field.Invalid(path.Index(v+1), label, fmt.Sprintf("exceeds maxLabel %d", args.MaxLabel)))
		}
	}
	if len(allErrs) == 0 {
		return nil
	}
	return &framework.ConfigError{Err: allErrs.ToAggregate()}
}
