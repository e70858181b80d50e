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

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"sigs.k8s.io/yaml"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(AddToScheme(scheme))
}

// Default applies the registered defaulting functions to args.
func Default(args *LabelingArgs) {
	scheme.Default(args)
}

// LoadLabelingArgs decodes YAML or JSON into defaulted, validated args.
// Unknown fields are rejected.
func LoadLabelingArgs(data []byte) (*LabelingArgs, error) {
	args := &LabelingArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, &framework.ConfigError{Err: fmt.Errorf("decoding LabelingArgs: %w", err)}
	}
	if args.APIVersion != "" && args.APIVersion != SchemeGroupVersion.String() {
		return nil, &framework.ConfigError{Err: fmt.Errorf("unsupported apiVersion %q, want %q", args.APIVersion, SchemeGroupVersion.String())}
	}
	if args.Kind != "" && args.Kind != Kind {
		return nil, &framework.ConfigError{Err: fmt.Errorf("unsupported kind %q, want %q", args.Kind, Kind)}
	}
	Default(args)
	if err := ValidateLabelingArgs(args); err != nil {
		return nil, err
	}
	return args, nil
}
