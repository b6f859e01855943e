package scene_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/contactlab/internal/scene"
)

const sampleDataset = `
name: sample
scenes:
  - id: ball_drop
    rigid_objects:
      - handle: objects/ball
        position: [0, 0.5, 0]
        radius: 0.1
  - id: arm_rest
    articulated_objects:
      - handle: urdf/arm
        position: [1, 0.0, 0]
        links:
          - name: shoulder
            offset: [0, 0.4, 0]
            radius: 0.08
          - name: hand
            offset: [0, 0.05, 0]
            radius: 0.06
`

var _ = Describe("LoadDataset", func() {
	var dir string

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads a valid dataset", func() {
		ds, err := scene.LoadDataset(write("scenes.yaml", sampleDataset))
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Name).To(Equal("sample"))
		Expect(ds.SceneIDs()).To(Equal([]string{"ball_drop", "arm_rest"}))
	})

	It("fails on a missing file", func() {
		_, err := scene.LoadDataset(filepath.Join(dir, "nope.yaml"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects an empty dataset", func() {
		_, err := scene.LoadDataset(write("empty.yaml", "name: empty\nscenes: []\n"))
		Expect(err).To(MatchError(ContainSubstring("no scenes")))
	})

	It("rejects duplicate scene ids", func() {
		_, err := scene.LoadDataset(write("dup.yaml", `
name: dup
scenes:
  - id: a
    rigid_objects:
      - {handle: x, position: [0, 1, 0], radius: 0.1}
  - id: a
    rigid_objects:
      - {handle: y, position: [0, 1, 0], radius: 0.1}
`))
		Expect(err).To(MatchError(ContainSubstring("duplicate scene id")))
	})

	It("rejects non-positive radii", func() {
		_, err := scene.LoadDataset(write("bad.yaml", `
name: bad
scenes:
  - id: a
    rigid_objects:
      - {handle: x, position: [0, 1, 0], radius: 0}
`))
		Expect(err).To(MatchError(ContainSubstring("non-positive radius")))
	})
})

var _ = Describe("Dataset", func() {
	var ds *scene.Dataset

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "scenes.yaml")
		Expect(os.WriteFile(path, []byte(sampleDataset), 0644)).To(Succeed())
		var err error
		ds, err = scene.LoadDataset(path)
		Expect(err).NotTo(HaveOccurred())
	})

	It("finds scenes by id", func() {
		sc, err := ds.SceneByID("arm_rest")
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.ArticulatedObjects).To(HaveLen(1))
		Expect(sc.ArticulatedObjects[0].Links).To(HaveLen(2))
	})

	It("errors on unknown scene ids", func() {
		_, err := ds.SceneByID("nope")
		Expect(err).To(MatchError(ContainSubstring("not in dataset")))
	})

	It("builds a simulator world", func() {
		sim, err := ds.BuildByID("ball_drop")
		Expect(err).NotTo(HaveOccurred())

		objects := sim.RigidObjectManager().ObjectsByHandleSubstring("")
		Expect(objects).To(HaveKey("objects/ball"))
		Expect(objects["objects/ball"].Radius).To(Equal(0.1))
	})

	It("builds articulated objects with links", func() {
		sim, err := ds.BuildByID("arm_rest")
		Expect(err).NotTo(HaveOccurred())

		aos := sim.ArticulatedObjectManager().ObjectsByHandleSubstring("arm")
		Expect(aos).To(HaveLen(1))
		ao := aos["urdf/arm"]
		Expect(ao.NumLinks()).To(Equal(2))

		name, err := ao.LinkName(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("hand"))
	})

	It("round-trips through Save", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.yaml")
		Expect(scene.Save(path, ds)).To(Succeed())

		again, err := scene.LoadDataset(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.SceneIDs()).To(Equal(ds.SceneIDs()))
	})
})
