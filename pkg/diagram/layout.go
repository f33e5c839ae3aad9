package diagram

// Layout constants for a 100×100 canvas. Horizontal values are scaled with
// Diagram.x, vertical values with Diagram.y.
const (
	startY         = 95.0
	titleY         = 98.0
	subtitleY      = 96.5
	afterTitleY    = 94.0
	titleSize      = 18.0
	subtitleSize   = 11.0
	sideMargin     = 10.0
	usableWidth    = 80.0
	centerX        = 50.0
	lifelineGap    = 2.0
	lifelineWidth  = 1.5
	participantW   = 10.0
	participantH   = 4.0
	participantGap = 1.0
	closingBoxH    = 3.0
	participantR   = 0.3
	frameMargin    = 1.0

	sectionBefore = 2.0
	sectionAfter  = 3.0
	sectionLeft   = 5.0
	sectionWidth  = 90.0
	sectionHeight = 2.0
	sectionDrop   = 1.5
	sectionRadius = 0.2
	sectionSize   = 11.0

	messageStep    = 1.5
	messageTrail   = 0.5
	labelLift      = 0.5
	labelSize      = 8.0
	arrowWidth     = 2.0
	arrowHeadSize  = 9.0
	selfLoopWidth  = 3.0
	selfLoopHeight = 1.5
	selfLabelGap   = 0.5

	noteLineHeight = 0.8
	notePadding    = 1.0
	noteBefore     = 0.5
	noteAfter      = 0.5
	noteOffset     = 6.0
	noteTextInset  = 0.5
	noteTextTop    = 0.5
	noteSpanPad    = 10.0
	noteRadius     = 0.2
	noteTextSize   = 7.0
	noteBoldSize   = 8.0
	defaultNoteW   = 15.0

	blockBefore    = 1.0
	blockAfter     = 1.0
	blockLeft      = 8.0
	blockRight     = 92.0
	blockTagW      = 8.0
	blockTagH      = 1.5
	blockTagX      = 12.0
	blockLabelX    = 18.0
	blockRadius    = 0.3
	blockOpacity   = 0.5
	blockTextSize  = 8.0
	elseLabelLift  = 0.3
	elseAfter      = 1.0
	legendBefore   = 2.0
	legendAfter    = 1.0
	legendLeft     = 5.0
	legendWidth    = 25.0
	legendTextX    = 7.0
	legendLineH    = 1.2
	legendTextTop  = 0.8
	legendHeadSize = 9.0
	finalizeGap    = 2.0
)
