package leave_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/leave"
)

var _ = Describe("ParseCreateText", func() {
	It("should parse the canonical request shape", func() {
		dto, appErr := leave.ParseCreateText("jane.doe", `25/02/2026-05/03/2026 2 "Vacation"`)

		Expect(appErr).To(BeNil())
		Expect(dto.Requester).To(Equal("jane.doe"))
		Expect(dto.FromDate).To(Equal("25/02/2026"))
		Expect(dto.ToDate).To(Equal("05/03/2026"))
		Expect(dto.CompOffCount).To(Equal(2))
		Expect(dto.Reason).To(Equal("Vacation"))
	})

	It("should decode percent-encoded slashes and quotes", func() {
		dto, appErr := leave.ParseCreateText("jane.doe", `25%2F02%2F2026-05%2F03%2F2026 2 %22Vacation%22`)

		Expect(appErr).To(BeNil())
		Expect(dto.FromDate).To(Equal("25/02/2026"))
		Expect(dto.Reason).To(Equal("Vacation"))
	})

	It("should keep a literal plus in the reason through the second decode", func() {
		dto, appErr := leave.ParseCreateText("jane.doe", `25/02/2026-05/03/2026 2 "A+B review"`)

		Expect(appErr).To(BeNil())
		Expect(dto.Reason).To(Equal("A+B review"))
	})

	It("should collapse runs of whitespace between fields", func() {
		dto, appErr := leave.ParseCreateText("jane.doe", `25/02/2026-05/03/2026    2   "Family  event"`)

		Expect(appErr).To(BeNil())
		Expect(dto.CompOffCount).To(Equal(2))
		Expect(dto.Reason).To(Equal("Family event"))
	})

	It("should reject trailing text after the quoted reason", func() {
		_, appErr := leave.ParseCreateText("jane.doe", `25/02/2026-05/03/2026 2 "short" trailing`)

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRequestFormat))
	})

	It("should reject an unquoted reason", func() {
		_, appErr := leave.ParseCreateText("jane.doe", `25/02/2026-05/03/2026 2 Vacation`)

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRequestFormat))
	})

	It("should reject single-digit date components", func() {
		_, appErr := leave.ParseCreateText("jane.doe", `5/2/2026-6/2/2026 2 "Vacation"`)

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRequestFormat))
	})

	It("should echo the received text in the format error", func() {
		_, appErr := leave.ParseCreateText("jane.doe", "garbage")

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Message).To(ContainSubstring(`"garbage"`))
	})
})

var _ = Describe("ParseCancelText", func() {
	It("should split the identifier from the reason on the first space", func() {
		dto, appErr := leave.ParseCancelText("LID-12345 changed my plans")

		Expect(appErr).To(BeNil())
		Expect(dto.LeaveID).To(Equal("LID-12345"))
		Expect(dto.Reason).To(Equal("changed my plans"))
	})

	It("should trim surrounding whitespace before splitting", func() {
		dto, appErr := leave.ParseCancelText("   LID-12345 changed my plans   ")

		Expect(appErr).To(BeNil())
		Expect(dto.LeaveID).To(Equal("LID-12345"))
		Expect(dto.Reason).To(Equal("changed my plans"))
	})

	It("should reject text without a reason", func() {
		_, appErr := leave.ParseCancelText("LID-12345")

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRequestFormat))
	})

	It("should check the reason length before the identifier shape", func() {
		_, appErr := leave.ParseCancelText("12345 ok")

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeReasonTooShort))
	})

	It("should reject a five-character rule violation after trimming", func() {
		_, appErr := leave.ParseCancelText("LID-12345   ok  ")

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeReasonTooShort))
	})

	It("should accept a reason of exactly five characters", func() {
		dto, appErr := leave.ParseCancelText("LID-12345 moved")

		Expect(appErr).To(BeNil())
		Expect(dto.Reason).To(Equal("moved"))
	})

	It("should reject a malformed identifier", func() {
		_, appErr := leave.ParseCancelText("LID12345 changed my plans")

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidLeaveID))
	})
})
