package bdlenum

// Command types consumed by the converter.
const (
	CmdRunPeriod       = "RUN-PERIOD-PD"
	CmdHolidays        = "HOLIDAYS"
	CmdSiteParameters  = "SITE-PARAMETERS"
	CmdBuildParameters = "BUILD-PARAMETERS"
	CmdFuelMeter       = "FUEL-METER"
	CmdElecMeter       = "ELEC-METER"
	CmdSteamMeter      = "STEAM-METER"
	CmdChwMeter        = "CHW-METER"
	CmdMasterMeters    = "MASTER-METERS"
	CmdDaySchedule     = "DAY-SCHEDULE-PD"
	CmdWeekSchedule    = "WEEK-SCHEDULE-PD"
	CmdSchedule        = "SCHEDULE-PD"
	CmdCurveFit        = "CURVE-FIT"
	CmdPolygon         = "POLYGON"
	CmdMaterial        = "MATERIAL"
	CmdLayers          = "LAYERS"
	CmdConstruction    = "CONSTRUCTION"
	CmdGlassType       = "GLASS-TYPE"
	CmdLoop            = "CIRCULATION-LOOP"
	CmdPump            = "PUMP"
	CmdEquipCtrl       = "EQUIP-CTRL"
	CmdGroundLoopHX    = "GROUND-LOOP-HX"
	CmdBoiler          = "BOILER"
	CmdChiller         = "CHILLER"
	CmdHeatRejection   = "HEAT-REJECTION"
	CmdDWHeater        = "DW-HEATER"
	CmdFloor           = "FLOOR"
	CmdSpace           = "SPACE"
	CmdExteriorWall    = "EXTERIOR-WALL"
	CmdInteriorWall    = "INTERIOR-WALL"
	CmdUndergroundWall = "UNDERGROUND-WALL"
	CmdWindow          = "WINDOW"
	CmdDoor            = "DOOR"
	CmdSystem          = "SYSTEM"
	CmdZone            = "ZONE"
)

// Boiler TYPE tokens.
const (
	BoilerHW         = "HW-BOILER"
	BoilerHWDraft    = "HW-BOILER-W/DRAFT"
	BoilerHWCondense = "HW-CONDENSING"
	BoilerElecHW     = "ELEC-HW-BOILER"
	BoilerSteam      = "STM-BOILER"
	BoilerSteamDraft = "STM-BOILER-W/DRAFT"
	BoilerElecSteam  = "ELEC-STM-BOILER"
	BoilerHeatPumpHW = "HW-HEAT-PUMP"
)

// Chiller TYPE and CONDENSER-TYPE tokens.
const (
	ChillerElecOpenCent  = "ELEC-OPEN-CENT"
	ChillerElecOpenRec   = "ELEC-OPEN-REC"
	ChillerElecHermCent  = "ELEC-HERM-CENT"
	ChillerElecHermRec   = "ELEC-HERM-REC"
	ChillerElecScrew     = "ELEC-SCREW"
	ChillerElecHtRec     = "ELEC-HTREC"
	ChillerAbsor1        = "ABSOR-1"
	ChillerAbsor2        = "ABSOR-2"
	ChillerGasAbsor      = "GAS-ABSOR"
	ChillerEngine        = "ENGINE"
	ChillerHeatPump      = "HEAT-PUMP"
	ChillerLoopToLoopHP  = "LOOP-TO-LOOP-HP"
	ChillerWaterEconomiz = "WATER-ECONOMIZER"
	ChillerStratTank     = "STRAT-TANK"

	CondenserWaterCooled      = "WATER-COOLED"
	CondenserAirCooled        = "AIR-COOLED"
	CondenserRemoteAirCooled  = "REMOTE-AIR-COOLED"
	CondenserRemoteEvapCooled = "REMOTE-EVAP-COOLED"
)

// Circulation loop tokens.
const (
	LoopCHW   = "CHW"
	LoopHW    = "HW"
	LoopCW    = "CW"
	LoopPipe2 = "PIPE2"
	LoopWLHP  = "WLHP"
	LoopDHW   = "DHW"

	LoopPrimary   = "PRIMARY"
	LoopSecondary = "SECONDARY"

	SetptFixed     = "FIXED"
	SetptOAReset   = "OA-RESET"
	SetptScheduled = "SCHEDULED"
	SetptLoadReset = "LOAD-RESET"
	SetptWetbulb   = "WETBULB-RESET"
	SetptDualReset = "DUAL-RESET"

	LoopOpStandby   = "STANDBY"
	LoopOpDemand    = "DEMAND"
	LoopOpScheduled = "SCHEDULED"
	LoopOpSnap      = "SNAP"

	ValveTwoWay   = "TWO-WAY"
	ValveThreeWay = "THREE-WAY"
	FlowVariable  = "VARIABLE-FLOW"
	FlowConstant  = "CONSTANT-FLOW"
)

// Pump CAP-CTRL tokens.
const (
	PumpOneSpeed = "ONE-SPEED-PUMP"
	PumpTwoSpeed = "TWO-SPEED-PUMP"
	PumpVarSpeed = "VAR-SPEED-PUMP"
)

// Heat rejection TYPE and CAPACITY-CTRL tokens.
const (
	TowerOpen      = "OPEN-TWR"
	TowerOpenHX    = "OPEN-TWR&HX"
	TowerFluid     = "FLUID-COOLER"
	TowerDryCooler = "DRYCOOLER"

	TowerOneSpeedFan = "ONE-SPEED-FAN"
	TowerTwoSpeedFan = "TWO-SPEED-FAN"
	TowerVarSpeedFan = "VARIABLE-SPEED-FAN"
	TowerFluidBypass = "FLUID-BYPASS"
	TowerFanCycling  = "FAN-CYCLING"
)

// DW-HEATER TYPE tokens.
const (
	DWHeaterGas      = "GAS"
	DWHeaterElec     = "ELEC"
	DWHeaterHeatPump = "HEAT-PUMP"
)

// Meter TYPE tokens.
const (
	FuelNaturalGas = "NATURAL-GAS"
	FuelLPG        = "LPG"
	FuelOil        = "FUEL-OIL"
	FuelDieselOil  = "DIESEL-OIL"
	FuelCoal       = "COAL"
	FuelMethanol   = "METHANOL"
	FuelOther      = "OTHER-FUEL"
)

// SYSTEM TYPE tokens.
const (
	SysPSZ       = "PSZ"
	SysPMZS      = "PMZS"
	SysPVAVS     = "PVAVS"
	SysPVVT      = "PVVT"
	SysPTAC      = "PTAC"
	SysHP        = "HP"
	SysSZRH      = "SZRH"
	SysVAVS      = "VAVS"
	SysRHFS      = "RHFS"
	SysMZS       = "MZS"
	SysDDS       = "DDS"
	SysSZCI      = "SZCI"
	SysFC        = "FC"
	SysIU        = "IU"
	SysUVT       = "UVT"
	SysUHT       = "UHT"
	SysRESYS     = "RESYS"
	SysRESVVT    = "RESVVT"
	SysCBVAV     = "CBVAV"
	SysDOAS      = "DOAS"
	SysSUM       = "SUM"
	SysFPH       = "FPH"
	SysEvap      = "EVAP-COOL"
	SysPIU       = "PIU"
	SysBaseboard = "BASEBOARD"
)

// SYSTEM source and control tokens.
const (
	HeatElectric = "ELECTRIC"
	HeatHotWater = "HOT-WATER"
	HeatFurnace  = "FURNACE"
	HeatHeatPump = "HEAT-PUMP"
	HeatDHWLoop  = "DHW-LOOP"
	HeatSteam    = "STEAM"
	HeatNone     = "NONE"
	HeatGasHydro = "GAS-HYDRONIC"
	HeatOilHydro = "OIL-HYDRONIC"

	CoolElecDX  = "ELEC-DX"
	CoolChilled = "CHILLED-WATER"
	CoolNone    = "NONE"

	FanConstant      = "CONSTANT"
	FanSpeed         = "SPEED"
	FanInlet         = "INLET"
	FanDischarge     = "DISCHARGE"
	FanVariablePitch = "VARIABLE-PITCH"
	FanTwoSpeed      = "TWO-SPEED"

	OAFixed        = "FIXED"
	OATemp         = "OA-TEMP"
	OAEnthalpy     = "OA-ENTHALPY"
	OADualTemp     = "DUAL-TEMP"
	OADualEnthalpy = "DUAL-ENTHALPY"

	ERVSensibleHX    = "SENSIBLE-HXER"
	ERVEnthalpyHX    = "ENTHALPY-HXER"
	ERVSensibleWheel = "SENSIBLE-WHEEL"
	ERVEnthalpyWheel = "ENTHALPY-WHEEL"
	ERVHeatPipe      = "HEAT-PIPE"

	NightCycleNever      = "STAY-OFF"
	NightCycleZoneFans   = "ZONE-FANS-ONLY"
	NightCycleCycleOn    = "CYCLE-ON-ANY"
	NightCycleCycleFirst = "CYCLE-ON-FIRST"
)

// ZONE terminal tokens.
const (
	TerminalSVAV        = "SVAV"
	TerminalSeriesPIU   = "SERIES-PIU"
	TerminalParallelPIU = "PARALLEL-PIU"
	TerminalIU          = "TERMINAL-IU"
	TerminalCVReheat    = "CVRH"

	ZoneConditioned   = "CONDITIONED"
	ZoneUnconditioned = "UNCONDITIONED"
	ZonePlenum        = "PLENUM"
)

// Wall and opening tokens.
const (
	IntWallStandard  = "STANDARD"
	IntWallAir       = "AIR"
	IntWallAdiabatic = "ADIABATIC"
	IntWallInternal  = "INTERNAL"

	LocationTop    = "TOP"
	LocationBottom = "BOTTOM"
	LocationFront  = "FRONT"
	LocationBack   = "BACK"
	LocationLeft   = "LEFT"
	LocationRight  = "RIGHT"

	ShapeBox     = "BOX"
	ShapePolygon = "POLYGON"
	ShapeNoShape = "NO-SHAPE"

	ConsLayers = "LAYERS"
	ConsUValue = "U-VALUE"

	GlassShadingCoef = "SHADING-COEF"
	GlassGlassType   = "GLASS-TYPE-CODE"
)

// CURVE-FIT tokens.
const (
	CurveLinear      = "LINEAR"
	CurveQuadratic   = "QUADRATIC"
	CurveCubic       = "CUBIC"
	CurveBiLinear    = "BI-LINEAR"
	CurveBiQuadratic = "BI-QUADRATIC"

	CurveInputCoefficients = "COEFFICIENTS"
	CurveInputData         = "DATA"
)

// Schedule and holiday tokens.
const (
	SchOnOff      = "ON/OFF"
	SchFraction   = "FRACTION"
	SchMultiplier = "MULTIPLIER"
	SchTemp       = "TEMPERATURE"
	SchResetTemp  = "RESET-TEMP"
	SchResetRatio = "RESET-RATIO"
	SchOnOffFlag  = "ON/OFF/FLAG"
	SchOnOffTemp  = "ON/OFF/TEMP"
	SchFracDesign = "FRAC/DESIGN"
	SchExpFrac    = "EXP/FRACTION"

	HolidayOfficial  = "OFFICIAL"
	HolidayAlternate = "ALTERNATE"

	// InheritDay marks a week-schedule slot that reuses the previous slot.
	InheritDay = "&D"
)

// Enumerations.
var (
	Commands = register("COMMANDS",
		CmdRunPeriod, CmdHolidays, CmdSiteParameters, CmdBuildParameters,
		CmdFuelMeter, CmdElecMeter, CmdSteamMeter, CmdChwMeter, CmdMasterMeters,
		CmdDaySchedule, CmdWeekSchedule, CmdSchedule, CmdCurveFit, CmdPolygon,
		CmdMaterial, CmdLayers, CmdConstruction, CmdGlassType,
		CmdLoop, CmdPump, CmdEquipCtrl, CmdGroundLoopHX,
		CmdBoiler, CmdChiller, CmdHeatRejection, CmdDWHeater,
		CmdFloor, CmdSpace, CmdExteriorWall, CmdInteriorWall, CmdUndergroundWall,
		CmdWindow, CmdDoor, CmdSystem, CmdZone,
	)

	// LibraryCommands may be declared as positional LIBRARY-ENTRY records.
	LibraryCommands = register("LIBRARY-COMMANDS", CmdCurveFit, CmdMaterial, CmdGlassType)

	BoilerTypes = register("BOILER-TYPE",
		BoilerHW, BoilerHWDraft, BoilerHWCondense, BoilerElecHW,
		BoilerSteam, BoilerSteamDraft, BoilerElecSteam, BoilerHeatPumpHW,
	)
	ChillerTypes = register("CHILLER-TYPE",
		ChillerElecOpenCent, ChillerElecOpenRec, ChillerElecHermCent, ChillerElecHermRec,
		ChillerElecScrew, ChillerElecHtRec, ChillerAbsor1, ChillerAbsor2, ChillerGasAbsor,
		ChillerEngine, ChillerHeatPump, ChillerLoopToLoopHP, ChillerWaterEconomiz, ChillerStratTank,
	)
	CondenserTypes = register("CONDENSER-TYPE",
		CondenserWaterCooled, CondenserAirCooled, CondenserRemoteAirCooled, CondenserRemoteEvapCooled,
	)
	LoopTypes     = register("CIRCULATION-LOOP-TYPE", LoopCHW, LoopHW, LoopCW, LoopPipe2, LoopWLHP, LoopDHW)
	LoopSubtypes  = register("CIRCULATION-LOOP-SUBTYPE", LoopPrimary, LoopSecondary)
	SetpointCtrls = register("LOOP-SETPT-CTRL",
		SetptFixed, SetptOAReset, SetptScheduled, SetptLoadReset, SetptWetbulb, SetptDualReset,
	)
	LoopOperations = register("LOOP-OPERATION", LoopOpStandby, LoopOpDemand, LoopOpScheduled, LoopOpSnap)
	ValveTypes     = register("VALVE-TYPE", ValveTwoWay, ValveThreeWay, FlowVariable, FlowConstant)

	PumpCapCtrls = register("PUMP-CAP-CTRL", PumpOneSpeed, PumpTwoSpeed, PumpVarSpeed)

	HeatRejectionTypes = register("HEAT-REJECTION-TYPE", TowerOpen, TowerOpenHX, TowerFluid, TowerDryCooler)
	HeatRejectionCtrls = register("HEAT-REJECTION-CAPACITY-CTRL",
		TowerOneSpeedFan, TowerTwoSpeedFan, TowerVarSpeedFan, TowerFluidBypass, TowerFanCycling,
	)

	DWHeaterTypes = register("DW-HEATER-TYPE", DWHeaterGas, DWHeaterElec, DWHeaterHeatPump)

	FuelTypes = register("FUEL-METER-TYPE",
		FuelNaturalGas, FuelLPG, FuelOil, FuelDieselOil, FuelCoal, FuelMethanol, FuelOther,
	)

	SystemTypes = register("SYSTEM-TYPE",
		SysPSZ, SysPMZS, SysPVAVS, SysPVVT, SysPTAC, SysHP, SysSZRH, SysVAVS, SysRHFS,
		SysMZS, SysDDS, SysSZCI, SysFC, SysIU, SysUVT, SysUHT, SysRESYS, SysRESVVT,
		SysCBVAV, SysDOAS, SysSUM, SysFPH, SysEvap, SysPIU, SysBaseboard,
	)
	HeatSources = register("SYSTEM-HEAT-SOURCE",
		HeatElectric, HeatHotWater, HeatFurnace, HeatHeatPump, HeatDHWLoop, HeatSteam,
		HeatNone, HeatGasHydro, HeatOilHydro,
	)
	CoolSources = register("SYSTEM-COOL-SOURCE", CoolElecDX, CoolChilled, CoolNone)
	FanControls = register("SYSTEM-FAN-CONTROL",
		FanConstant, FanSpeed, FanInlet, FanDischarge, FanVariablePitch, FanTwoSpeed,
	)
	EconomizerCtrls = register("SYSTEM-OA-CONTROL", OAFixed, OATemp, OAEnthalpy, OADualTemp, OADualEnthalpy)
	RecoveryTypes   = register("SYSTEM-ERV-RECOVER-TYPE",
		ERVSensibleHX, ERVEnthalpyHX, ERVSensibleWheel, ERVEnthalpyWheel, ERVHeatPipe,
	)
	NightCycleCtrls = register("SYSTEM-NIGHT-CYCLE-CTRL",
		NightCycleNever, NightCycleZoneFans, NightCycleCycleOn, NightCycleCycleFirst,
	)

	TerminalTypes = register("ZONE-TERMINAL-TYPE",
		TerminalSVAV, TerminalSeriesPIU, TerminalParallelPIU, TerminalIU, TerminalCVReheat,
	)
	ZoneTypes = register("ZONE-TYPE", ZoneConditioned, ZoneUnconditioned, ZonePlenum)

	InteriorWallTypes = register("INT-WALL-TYPE", IntWallStandard, IntWallAir, IntWallAdiabatic, IntWallInternal)
	WallLocations     = register("WALL-LOCATION",
		LocationTop, LocationBottom, LocationFront, LocationBack, LocationLeft, LocationRight,
	)
	SpaceShapes       = register("SPACE-SHAPE", ShapeBox, ShapePolygon, ShapeNoShape)
	ConstructionTypes = register("CONSTRUCTION-TYPE", ConsLayers, ConsUValue)
	GlassTypeSpecs    = register("GLASS-TYPE-SPECIFICATION", GlassShadingCoef, GlassGlassType)

	CurveTypes      = register("CURVE-FIT-TYPE", CurveLinear, CurveQuadratic, CurveCubic, CurveBiLinear, CurveBiQuadratic)
	CurveInputTypes = register("CURVE-FIT-INPUT-TYPE", CurveInputCoefficients, CurveInputData)

	ScheduleTypes = register("SCHEDULE-TYPE",
		SchOnOff, SchFraction, SchMultiplier, SchTemp, SchResetTemp, SchResetRatio,
		SchOnOffFlag, SchOnOffTemp, SchFracDesign, SchExpFrac,
	)
	HolidayTypes = register("HOLIDAY-TYPE", HolidayOfficial, HolidayAlternate)

	// Units lists the unit annotations the reader strips from keyword values.
	Units = register("UNITS",
		"FT", "IN", "SQFT", "CUFT", "FT2", "FT3", "F", "R", "DEG", "DEGREES",
		"BTU", "BTU/HR", "KBTU/HR", "MBTU/HR", "MMBTU/HR", "BTU/HR-F", "BTU/HR-SQFT-F",
		"BTU/HR-SQFT", "BTU/HR-FT-F", "BTU/LB-F", "BTU/LB", "LB/CUFT", "LB", "HR-SQFT-F/BTU",
		"CFM", "CFM/SQFT", "CFM/PERSON", "GPM", "GPM/TON", "GAL", "TONS", "TON",
		"KW", "W", "W/SQFT", "KW/TON", "KW/CFM", "W/GPM", "W/CFM", "BHP", "HP",
		"IN-WATER", "FT-WATER", "PSI", "PSIG", "FRAC", "RATIO", "PEOPLE", "SQFT/PERSON",
		"MPH", "HRS", "HOURS", "%", "$", "$/UNIT",
	)
)
