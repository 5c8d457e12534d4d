package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/leave"
)

var _ = Describe("SnapshotCache", func() {
	var (
		cache       *leave.SnapshotCache
		currentTime time.Time
	)

	BeforeEach(func() {
		currentTime = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		cache = leave.NewSnapshotCache(300*time.Second, func() time.Time { return currentTime })
	})

	It("should miss before anything is stored", func() {
		_, hit := cache.Get()
		Expect(hit).To(BeFalse())
	})

	It("should hit while the snapshot is younger than the TTL", func() {
		cache.Put([]leave.LeaveRecord{{LeaveID: "LID-100"}})

		currentTime = currentTime.Add(299 * time.Second)
		records, hit := cache.Get()

		Expect(hit).To(BeTrue())
		Expect(records).To(HaveLen(1))
		Expect(records[0].LeaveID).To(Equal("LID-100"))
	})

	It("should miss once the snapshot reaches the TTL", func() {
		cache.Put([]leave.LeaveRecord{{LeaveID: "LID-100"}})

		currentTime = currentTime.Add(300 * time.Second)
		_, hit := cache.Get()

		Expect(hit).To(BeFalse())
	})

	It("should restart the TTL on every put", func() {
		cache.Put([]leave.LeaveRecord{{LeaveID: "LID-100"}})

		currentTime = currentTime.Add(200 * time.Second)
		cache.Put([]leave.LeaveRecord{{LeaveID: "LID-200"}})

		currentTime = currentTime.Add(200 * time.Second)
		records, hit := cache.Get()

		Expect(hit).To(BeTrue())
		Expect(records[0].LeaveID).To(Equal("LID-200"))
	})

	It("should cache an empty snapshot as a valid entry", func() {
		cache.Put(nil)

		records, hit := cache.Get()

		Expect(hit).To(BeTrue())
		Expect(records).To(BeEmpty())
	})
})
