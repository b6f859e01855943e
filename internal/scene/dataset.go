package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset is a named list of scenes loaded from one yaml file.
type Dataset struct {
	Name   string  `yaml:"name"`
	Scenes []Scene `yaml:"scenes"`
}

// Scene describes the objects of one loadable world.
type Scene struct {
	ID                 string            `yaml:"id"`
	RigidObjects       []RigidSpec       `yaml:"rigid_objects"`
	ArticulatedObjects []ArticulatedSpec `yaml:"articulated_objects"`
}

// RigidSpec describes one rigid sphere body.
type RigidSpec struct {
	Handle   string     `yaml:"handle"`
	Position [3]float64 `yaml:"position"`
	Radius   float64    `yaml:"radius"`
	Static   bool       `yaml:"static"`
}

// ArticulatedSpec describes one multi-link body.
type ArticulatedSpec struct {
	Handle   string     `yaml:"handle"`
	Position [3]float64 `yaml:"position"`
	Links    []LinkSpec `yaml:"links"`
}

// LinkSpec describes one link proxy, offset from the body base.
type LinkSpec struct {
	Name   string     `yaml:"name"`
	Offset [3]float64 `yaml:"offset"`
	Radius float64    `yaml:"radius"`
}

// LoadDataset reads and validates a scene dataset from a yaml file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Save writes the dataset back to a yaml file.
func Save(path string, ds *Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (ds *Dataset) validate() error {
	if len(ds.Scenes) == 0 {
		return fmt.Errorf("no scenes defined")
	}
	seen := make(map[string]bool)
	for i, sc := range ds.Scenes {
		if sc.ID == "" {
			return fmt.Errorf("scene %d has no id", i)
		}
		if seen[sc.ID] {
			return fmt.Errorf("duplicate scene id %q", sc.ID)
		}
		seen[sc.ID] = true
		for _, ro := range sc.RigidObjects {
			if ro.Radius <= 0 {
				return fmt.Errorf("scene %q: object %q has non-positive radius", sc.ID, ro.Handle)
			}
		}
		for _, ao := range sc.ArticulatedObjects {
			for _, l := range ao.Links {
				if l.Radius <= 0 {
					return fmt.Errorf("scene %q: link %q has non-positive radius", sc.ID, l.Name)
				}
			}
		}
	}
	return nil
}

// SceneIDs returns the scene ids in dataset order.
func (ds *Dataset) SceneIDs() []string {
	ids := make([]string, 0, len(ds.Scenes))
	for _, sc := range ds.Scenes {
		ids = append(ids, sc.ID)
	}
	return ids
}

// SceneByID returns the scene with the given id.
func (ds *Dataset) SceneByID(id string) (*Scene, error) {
	for i := range ds.Scenes {
		if ds.Scenes[i].ID == id {
			return &ds.Scenes[i], nil
		}
	}
	return nil, fmt.Errorf("scene %q not in dataset", id)
}
