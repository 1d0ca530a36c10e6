//go:build component
// +build component

package component

import "github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"

func (s *ComponentTestSuite) TestSoftDeleteReleasesTheEmail() {
	given, when, then := s.gherkin()

	given().
		aPersonIsCreated().
		thePersonIsSoftDeleted()

	when().
		aPersonWithTheSameEmailIsCreated()

	then().
		theCreationSucceeds().
		thePersonIsExcludedFromDefaultReads().
		listingDeletedPersonsShowsTheOriginal().
		revivingTheOriginalConflicts()
}

func (s *ComponentTestSuite) TestLiveEmailConflicts() {
	given, when, then := s.gherkin()

	given().
		aPersonIsCreated()

	when().
		aPersonWithTheSameEmailIsCreated()

	then().
		theCreationConflicts()
}

func (s *ComponentTestSuite) TestLifecycleIsAudited() {
	given, when, then := s.gherkin()

	given().
		aPersonIsCreated()

	when().
		thePersonIsSoftDeleted()

	then().
		lifecycleEventsWillEventuallyBeProduced(model.EventCreated, model.EventStatusChanged).
		theAuditTrailWillEventuallyRecordTheDeletion()
}

func (s *ComponentTestSuite) TestEmptyCollectionPage() {
	_, when, then := s.gherkin()

	when().
		companiesAreListed(1, 10)

	then().
		thePageIs(model.Page[*model.Company]{TotalItems: 0, TotalPages: 1, CurrentPage: 1})
}

func (s *ComponentTestSuite) TestPageBeyondRange() {
	given, when, then := s.gherkin()

	given().
		companiesExist(12)

	when().
		companiesAreListed(5, 10)

	then().
		thePageIs(model.Page[*model.Company]{TotalItems: 12, TotalPages: 2, CurrentPage: 5, HasPreviousPage: true})
}
