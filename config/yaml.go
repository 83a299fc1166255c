// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	yaml "github.com/goccy/go-yaml"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

// LandscapeFile is the on-disk YAML shape of a table landscape: a flat list
// of tables, each carrying its own nature, filters and column assignments.
// It is a pure serialization DTO; callers convert it to a *MultiTableConfig
// via Build, which runs every SingleTableConfig/MultiTableConfig invariant
// check through the builder DSL rather than duplicating it here.
type LandscapeFile struct {
	Tables []TableFile `yaml:"tables" validate:"required,dive"`
}

// TableFile is one table entry in a LandscapeFile.
type TableFile struct {
	Name    string         `yaml:"name" validate:"required"`
	IDCol   string         `yaml:"idColumn" validate:"required"`
	Nature  NatureFile     `yaml:"nature"`
	Filters []FilterFile   `yaml:"filters"`
	Columns []ColumnFile   `yaml:"columns" validate:"dive"`
}

// NatureFile is the on-disk form of TableNature.
type NatureFile struct {
	Primary        bool `yaml:"primary"`
	ContainsAllIDs bool `yaml:"containsAllIds"`
	Sparse         bool `yaml:"sparse"`
	UniqueIDs      bool `yaml:"uniqueIds"`
}

// FilterFile is the on-disk form of a FilterColumn.
type FilterFile struct {
	Column  string `yaml:"column" validate:"required"`
	SQLType string `yaml:"sqlType" validate:"required"`
	Value   string `yaml:"value"`
}

// ColumnFile is the on-disk form of an argument-to-column assignment.
type ColumnFile struct {
	Column        string `yaml:"column" validate:"required"`
	ArgName       string `yaml:"argName" validate:"required"`
	LogicalType   string `yaml:"logicalType" validate:"required"`
	SQLType       string `yaml:"sqlType" validate:"required"`
	MultiRow      bool   `yaml:"multiRow"`
	AlwaysKnown   bool   `yaml:"alwaysKnown"`
	Collection    bool   `yaml:"collection"`
}

// ParseLandscapeFile decodes raw YAML bytes into a LandscapeFile using a
// strict decoder (unknown fields rejected) plus struct-tag validation,
// mirroring the teacher's config-decoding convention of marshaling a zero
// value first to validate the target shape before decoding into it.
func ParseLandscapeFile(raw []byte) (*LandscapeFile, error) {
	var f LandscapeFile
	if _, err := yaml.Marshal(f); err != nil {
		return nil, &audlang.ConfigError{Msg: "invalid LandscapeFile shape", Cause: err}
	}
	dec := yaml.NewDecoder(
		bytes.NewReader(raw),
		yaml.Strict(),
		yaml.Validator(validator.New()),
	)
	if err := dec.Decode(&f); err != nil {
		return nil, &audlang.ConfigError{Msg: "failed to decode table landscape", Cause: err}
	}
	return &f, nil
}

// Build converts f into a validated *MultiTableConfig, looking up each
// column's SQL type by name via typeLookup (typically sqltype.Lookup).
func (f *LandscapeFile) Build(typeLookup func(sqltype.Kind) (sqltype.AdlSqlType, bool)) (*MultiTableConfig, error) {
	if typeLookup == nil {
		typeLookup = sqltype.Lookup
	}
	tables := make([]*SingleTableConfig, 0, len(f.Tables))
	for _, tf := range f.Tables {
		b := ForTable(tf.Name).IDColumn(tf.IDCol).Nature(TableNature{
			Primary:        tf.Nature.Primary,
			ContainsAllIDs: tf.Nature.ContainsAllIDs,
			Sparse:         tf.Nature.Sparse,
			UniqueIDs:      tf.Nature.UniqueIDs,
		})
		for _, ff := range tf.Filters {
			sqlType, ok := typeLookup(sqltype.Kind(ff.SQLType))
			if !ok {
				return nil, &audlang.ConfigError{Msg: fmt.Sprintf("table %q filter %q: unknown SQL type %q", tf.Name, ff.Column, ff.SQLType)}
			}
			b = b.Filter(ff.Column, sqlType, ff.Value)
		}
		for _, cf := range tf.Columns {
			sqlType, ok := typeLookup(sqltype.Kind(cf.SQLType))
			if !ok {
				return nil, &audlang.ConfigError{Msg: fmt.Sprintf("table %q column %q: unknown SQL type %q", tf.Name, cf.Column, cf.SQLType)}
			}
			meta, err := audlang.NewArgMetaInfo(cf.ArgName, audlang.LogicalType(cf.LogicalType), cf.AlwaysKnown, cf.Collection)
			if err != nil {
				return nil, err
			}
			b = b.DataColumn(cf.Column, meta, sqlType, cf.MultiRow, cf.AlwaysKnown, cf.Collection)
		}
		table, err := b.Get()
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return NewMultiTableConfig(tables...)
}
