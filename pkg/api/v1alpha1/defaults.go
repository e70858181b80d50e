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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
)

// Kind is the kind of LabelingArgs objects.
const Kind = "LabelingArgs"

// DefaultRestarts is the number of annealing trajectories when unset.
const DefaultRestarts = 1

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "kind", Kind)
	scheme.AddTypeDefaultingFunc(&LabelingArgs{}, func(obj interface{}) {
		SetDefaults_LabelingArgs(obj.(*LabelingArgs))
	})
	return nil
}

// SetDefaults_LabelingArgs fills omitted fields. Evaluator defaults follow
// the variant: with a MaxLabel the max-label policy weighted 4:1, without one
// the distinct-count policy weighted 9:1.
func SetDefaults_LabelingArgs(args *LabelingArgs) {
	if args.APIVersion == "" {
		args.APIVersion = SchemeGroupVersion.String()
	}
	if args.Kind == "" {
		args.Kind = Kind
	}

	if args.Evaluator == nil {
		args.Evaluator = &EvaluatorArgs{}
	}
	conflictWeight, chromaticWeight := float64(constraints.DensityConflictWeight), float64(constraints.DensityChromaticWeight)
	policy := ChromaticPolicyDistinctCount
	if args.MaxLabel > 0 {
		conflictWeight, chromaticWeight = constraints.BackboneConflictWeight, constraints.BackboneChromaticWeight
		policy = ChromaticPolicyMaxLabel
	}
	if args.Evaluator.ChromaticPolicy == "" {
		args.Evaluator.ChromaticPolicy = policy
	}
	if args.Evaluator.ConflictWeight == nil {
		args.Evaluator.ConflictWeight = &conflictWeight
	}
	if args.Evaluator.ChromaticWeight == nil {
		args.Evaluator.ChromaticWeight = &chromaticWeight
	}

	if g := args.Genetic; g != nil {
		if g.TournamentFraction == 0 {
			g.TournamentFraction = algorithms.DefaultTournamentFraction
		}
		if g.Crossover == "" {
			g.Crossover = CrossoverFitnessProportional
		}
	}

	if a := args.Annealing; a != nil {
		if a.MinTemperature == 0 {
			a.MinTemperature = algorithms.DefaultMinTemperature
		}
		if a.CoolingFloor == "" {
			a.CoolingFloor = CoolingFloorZero
		}
		if a.Restarts == 0 {
			a.Restarts = DefaultRestarts
		}
	}
}
