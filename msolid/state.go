// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// IniState holds the initial (deviatoric and volumetric) strain and stress of a cell
type IniState struct {
	DevStrain float64 // initial deviatoric strain
	VolStrain float64 // initial volumetric strain
	DevStress float64 // initial deviatoric stress
	VolStress float64 // initial volumetric stress
}

// Values used to modify IniState; nil entries are left untouched
type IniValues struct {
	DevStrain *float64 `json:"devstrain" yaml:"devstrain"`
	VolStrain *float64 `json:"volstrain" yaml:"volstrain"`
	DevStress *float64 `json:"devstress" yaml:"devstress"`
	VolStress *float64 `json:"volstress" yaml:"volstress"`
}

// Set modifies the state with all non-nil values
func (o *IniState) Set(v *IniValues) {
	if v.DevStrain != nil {
		o.DevStrain = *v.DevStrain
	}
	if v.VolStrain != nil {
		o.VolStrain = *v.VolStrain
	}
	if v.DevStress != nil {
		o.DevStress = *v.DevStress
	}
	if v.VolStress != nil {
		o.VolStress = *v.VolStress
	}
}
